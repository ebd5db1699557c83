package pipeline_test

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/cucumber/godog"

	"github.com/Yara1604/InnovNation-Hackathon/internal/testutil"
	"github.com/Yara1604/InnovNation-Hackathon/test/integration/pipeline/support"
)

// InitializeScenario gives every scenario a fresh context.
func InitializeScenario(sc *godog.ScenarioContext) {
	tc, err := support.NewTestContext()
	if err != nil {
		panic(fmt.Sprintf("Failed to create test context: %v", err))
	}
	tc.RegisterSteps(sc)

	sc.After(func(ctx context.Context, _ *godog.Scenario, _ error) (context.Context, error) {
		if err := tc.Cleanup(); err != nil {
			fmt.Printf("Warning: Failed to cleanup test context: %v\n", err)
		}
		return ctx, nil
	})
}

// TestFeatures runs the Godog test suite.
func TestFeatures(t *testing.T) {
	root, err := testutil.GetProjectRoot()
	if err != nil {
		t.Fatalf("failed to locate project root: %v", err)
	}
	featuresDir := filepath.Join(root, "test", "integration", "pipeline", "features")
	entries, err := os.ReadDir(featuresDir)
	if err != nil {
		t.Fatalf("failed to read features directory: %v", err)
	}

	format := os.Getenv("GODOG_FORMAT")
	if format == "" {
		format = "pretty"
	}
	tags := os.Getenv("GODOG_TAGS")

	found := false
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".feature") {
			continue
		}
		found = true
		featurePath := filepath.Join(featuresDir, e.Name())

		t.Run(e.Name(), func(t *testing.T) {
			suite := godog.TestSuite{
				ScenarioInitializer: InitializeScenario,
				Options: &godog.Options{
					Format:   format,
					Tags:     tags,
					Paths:    []string{featurePath},
					Strict:   true,
					TestingT: t,
				},
			}
			if suite.Run() != 0 {
				t.Fatalf("non-zero status returned for %s", featurePath)
			}
		})
	}

	if !found {
		t.Fatalf("no .feature files found in features/")
	}
}

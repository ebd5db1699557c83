// Package cmd implements the markscan command-line interface.
package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/Yara1604/InnovNation-Hackathon/internal/config"
	"github.com/Yara1604/InnovNation-Hackathon/internal/version"
)

// configKeyAnnotation maps a flag to the configuration key it overrides.
const configKeyAnnotation = "markscan_config_key"

// state is the configuration resolved for one command execution.
type state struct {
	cfgFile string
	loader  *config.Loader
	cfg     *config.Config
}

// NewRootCommand builds the full command tree.
func NewRootCommand() *cobra.Command {
	st := &state{}

	root := &cobra.Command{
		Use:   "markscan",
		Short: "Convert highlighted page scans into Word documents",
		Long: `markscan reads a photographed or scanned page, finds yellow and green
highlighter marks, recognises the text and writes a DOCX document with one
paragraph per line of text. Paragraphs covered by a highlighter mark carry the
same highlight colour in the document.

Examples:
  markscan convert page.jpg notes.docx
  markscan convert page.png notes.docx --level word --report json
  markscan inspect notes.docx
  markscan config init`,
		Version:       version.String(),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if err := st.load(cmd); err != nil {
				return err
			}
			setupLogging(cmd.ErrOrStderr(), st.cfg)
			return nil
		},
	}
	root.SetVersionTemplate("{{.Version}}\n")

	pf := root.PersistentFlags()
	pf.StringVar(&st.cfgFile, "config", "",
		"config file (default is search in ., $HOME, $HOME/.config/markscan, /etc/markscan)")
	pf.BoolP("verbose", "v", false, "verbose output (equivalent to --log-level=debug)")
	pf.String("log-level", "info", "log level (debug, info, warn, error)")
	bindKey(pf, "verbose", "verbose")
	bindKey(pf, "log-level", "log_level")

	root.AddCommand(
		newConvertCommand(st),
		newInspectCommand(),
		newConfigCommand(st),
		newVersionCommand(),
	)
	return root
}

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	root := NewRootCommand()
	if err := root.Execute(); err != nil {
		_, _ = fmt.Fprintln(root.ErrOrStderr(), "Error:", err)
		os.Exit(1)
	}
}

// bindKey records the configuration key a flag overrides.
func bindKey(fs *pflag.FlagSet, flag, key string) {
	if err := fs.SetAnnotation(flag, configKeyAnnotation, []string{key}); err != nil {
		panic(fmt.Sprintf("bind flag %s: %v", flag, err))
	}
}

// load resolves configuration from defaults, .env, config file, environment
// and the flags set on this invocation. Validation is left to the commands
// that need a usable configuration.
func (st *state) load(cmd *cobra.Command) error {
	v := viper.New()
	var bindErr error
	bind := func(f *pflag.Flag) {
		if keys, ok := f.Annotations[configKeyAnnotation]; ok && bindErr == nil {
			bindErr = v.BindPFlag(keys[0], f)
		}
	}
	cmd.Flags().VisitAll(bind)
	cmd.InheritedFlags().VisitAll(bind)
	if bindErr != nil {
		return fmt.Errorf("bind flags: %w", bindErr)
	}

	st.loader = config.NewLoaderWithViper(v)
	cfg, err := st.loader.LoadWithFileWithoutValidation(st.cfgFile)
	if err != nil {
		return fmt.Errorf("error loading configuration: %w", err)
	}
	st.cfg = cfg
	return nil
}

// setupLogging installs the JSON slog handler at the configured level.
func setupLogging(w io.Writer, cfg *config.Config) {
	level := slog.LevelInfo
	if cfg.Verbose {
		level = slog.LevelDebug
	} else {
		switch strings.ToLower(cfg.LogLevel) {
		case "debug":
			level = slog.LevelDebug
		case "warn":
			level = slog.LevelWarn
		case "error":
			level = slog.LevelError
		}
	}
	slog.SetDefault(slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level})))
}

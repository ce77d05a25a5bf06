package main

import (
	"io"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/cameroncuttingedge/titration_four/config"
	"github.com/cameroncuttingedge/titration_four/questions"
)

var (
	cfg           config.Config
	questionsPath string
	logLevel      string
	logFile       *os.File
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "titration-four",
	Short: "Chemistry trivia connect-four on a 6x6 board",
	Long: `Titration Four gates every drop on a 6x6 board behind a chemistry
question. Answer right and your acid or base piece lands; four in a row wins.

  serve - run the HTTP and websocket server for a browser UI
  play  - play a local game in the terminal`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		loaded, err := config.Load()
		if err != nil {
			return err
		}
		cfg = loaded
		if cmd.Flags().Changed("questions") {
			cfg.QuestionSet = questionsPath
		}
		if cmd.Flags().Changed("log-level") {
			cfg.LogLevel = logLevel
		}
		return InitializeLogger(cfg, cmd.ErrOrStderr())
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logFile != nil {
			logFile.Close()
		}
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&questionsPath, "questions", "", "YAML or JSON question set (default: built-in redox titrants)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "Log level: debug, info, warn, error")
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(playCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		log.Error().Err(err).Msg("Command failed")
		os.Exit(1)
	}
}

// InitializeLogger points the global logger at out, and also at LOG_FILE
// when one is configured.
func InitializeLogger(c config.Config, out io.Writer) error {
	level, err := zerolog.ParseLevel(c.LogLevel)
	if err != nil {
		return err
	}
	zerolog.SetGlobalLevel(level)

	console := zerolog.ConsoleWriter{Out: out}
	if c.LogFile == "" {
		log.Logger = zerolog.New(console).With().Timestamp().Logger()
		return nil
	}

	runLogFile, err := os.OpenFile(
		c.LogFile,
		os.O_APPEND|os.O_CREATE|os.O_WRONLY,
		0664,
	)
	if err != nil {
		return err
	}
	logFile = runLogFile
	multi := zerolog.MultiLevelWriter(runLogFile, console)
	log.Logger = zerolog.New(multi).With().Timestamp().Logger()
	return nil
}

func loadQuestions(c config.Config) (*questions.Set, error) {
	if c.QuestionSet == "" {
		return questions.Default(), nil
	}
	set, err := questions.Load(c.QuestionSet)
	if err != nil {
		return nil, err
	}
	log.Info().Str("path", c.QuestionSet).Str("set", set.Name).Msg("Loaded question set")
	return set, nil
}

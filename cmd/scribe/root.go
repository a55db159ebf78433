package main

import (
	"github.com/spf13/cobra"
)

func newRootCommand() *cobra.Command {
	var configFlag string

	ctx := newCommandContext(&configFlag)
	opts := newProcessOptions()

	rootCmd := &cobra.Command{
		Use:           "scribe <url> [start] [end]",
		Short:         "Transcribe video segments into dataset-ready JSON",
		Long: "Scribe extracts an audio segment from an online video with yt-dlp, " +
			"transcribes it through a Whisper-compatible API, normalizes the text, " +
			"and stores the result as JSON alongside the FLAC audio.",
		Args:          cobra.RangeArgs(1, 3),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if shouldSkipConfig(cmd) {
				return nil
			}
			_, err := ctx.ensureConfig()
			return err
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runProcess(cmd, ctx, args, opts)
		},
	}

	rootCmd.PersistentFlags().StringVarP(&configFlag, "config", "c", "", "Configuration file path")
	rootCmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "Override log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&opts.logFormat, "log-format", "", "Override log format (auto, console, json)")

	flags := rootCmd.Flags()
	flags.StringVar(&opts.lang, "lang", "ru-RU", "BCP-47 language tag recorded in the output")
	flags.StringVar(&opts.sourceType, "type", "youtube", "Source type label (youtube, podcast, audiobook, dataset, lecture)")
	flags.StringVar(&opts.voiceDescription, "description", "", "Speaker voice description recorded in the output")
	flags.StringVar(&opts.outputDir, "output-dir", "", "Override the configured output directory")
	flags.StringVar(&opts.llmPrompt, "llm-prompt", "", "Normalization prompt preset (default, podcast, audiobook, lecture, custom)")
	flags.StringVar(&opts.llmCustomPrompt, "llm-custom-prompt", "", "Custom normalization prompt (requires --llm-prompt custom)")
	flags.BoolVar(&opts.disableLLM, "disable-llm", false, "Skip LLM normalization and use the rule-based form")

	rootCmd.AddCommand(newConfigCommand())
	rootCmd.AddCommand(newDepsCommand(ctx))

	return rootCmd
}

package main

import (
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/pdiddy/equity-scout/internal/events"
	"github.com/pdiddy/equity-scout/internal/secrets"
	"github.com/pdiddy/equity-scout/pkg/types"
)

// pipelineConfig builds the run configuration: defaults, overlaid with any
// values from the config file or environment, then API keys from secrets.
func pipelineConfig() types.PipelineConfig {
	cfg := types.DefaultPipelineConfig()

	if v := viper.GetString("completion.provider"); v != "" {
		cfg.Interpreter.Provider = v
		cfg.Synthesis.Provider = v
	}
	if v := viper.GetString("completion.model"); v != "" {
		cfg.Interpreter.Model = v
		cfg.Synthesis.Model = v
	}
	if viper.IsSet("completion.max_tokens") {
		cfg.Interpreter.MaxTokens = viper.GetInt("completion.max_tokens")
		cfg.Synthesis.MaxTokens = viper.GetInt("completion.max_tokens")
	}
	if viper.IsSet("discovery.max_sources") {
		cfg.Discovery.MaxSources = viper.GetInt("discovery.max_sources")
	}
	if viper.IsSet("discovery.results_per_query") {
		cfg.Discovery.ResultsPerQuery = viper.GetInt("discovery.results_per_query")
	}
	if viper.IsSet("discovery.query_delay") {
		cfg.Discovery.QueryDelay = viper.GetDuration("discovery.query_delay")
	}
	if v := viper.GetStringSlice("trusted_domains"); len(v) > 0 {
		cfg.Discovery.TrustedDomains = v
		cfg.Validation.TrustedDomains = v
	}
	if viper.IsSet("fetch.min_content_length") {
		cfg.Fetch.MinContentLength = viper.GetInt("fetch.min_content_length")
	}
	if viper.IsSet("fetch.fetch_delay") {
		cfg.Fetch.FetchDelay = viper.GetDuration("fetch.fetch_delay")
	}
	if viper.IsSet("fetch.timeout") {
		cfg.Fetch.Timeout = viper.GetDuration("fetch.timeout")
	}
	if viper.IsSet("validation.min_confidence") {
		cfg.Validation.MinConfidence = viper.GetFloat64("validation.min_confidence")
	}
	if viper.IsSet("validation.high_confidence") {
		cfg.Validation.HighConfidence = viper.GetFloat64("validation.high_confidence")
	}
	if viper.IsSet("synthesis.chunk_size") {
		cfg.Synthesis.ChunkSize = viper.GetInt("synthesis.chunk_size")
	}
	if viper.IsSet("synthesis.chunk_overlap") {
		cfg.Synthesis.ChunkOverlap = viper.GetInt("synthesis.chunk_overlap")
	}
	if viper.IsSet("synthesis.top_k") {
		cfg.Synthesis.TopK = viper.GetInt("synthesis.top_k")
	}
	if viper.IsSet("synthesis.index_path") {
		cfg.Synthesis.IndexPath = viper.GetString("synthesis.index_path")
	}
	if viper.IsSet("stage_timeout") {
		cfg.StageTimeout = viper.GetDuration("stage_timeout")
	}

	cfg.Interpreter.APIKey = completionKey(cfg.Interpreter.Provider)
	cfg.Synthesis.APIKey = completionKey(cfg.Synthesis.Provider)
	cfg.Discovery.SerperAPIKey = secretDefault(secrets.KeySerper, viper.GetString("serper_api_key"))

	return cfg
}

// completionKey selects the API key matching the completion provider.
func completionKey(provider string) string {
	if provider == "gemini" {
		return secretDefault(secrets.KeyGemini, viper.GetString("gemini_api_key"))
	}
	return secretDefault(secrets.KeyAnthropic, viper.GetString("anthropic_api_key"))
}

// eventSink builds the stage event sink selected by --log-json. Events go to
// stderr so stdout stays clean for report output.
func eventSink() (events.Sink, func()) {
	logJSON, _ := rootCmd.PersistentFlags().GetBool("log-json")
	if !logJSON {
		return events.NewWriterSink(os.Stderr), func() {}
	}

	logger, err := zap.NewProduction()
	if err != nil {
		return events.NewWriterSink(os.Stderr), func() {}
	}
	return events.NewZapSink(logger), func() { _ = logger.Sync() }
}

// openOutput returns the report destination: stdout, or the --output file.
// The returned close func is a no-op for stdout.
func openOutput(cmd *cobra.Command) (io.Writer, func() error, error) {
	path, _ := cmd.Flags().GetString("output")
	if path == "" {
		return os.Stdout, func() error { return nil }, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, nil, err
	}
	return f, f.Close, nil
}

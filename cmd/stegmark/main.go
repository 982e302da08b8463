package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/stegmark/stegmark"
)

var (
	flagOut      string
	flagFormat   string
	flagQuality  int
	flagECCSeed  int64
	flagCompress bool
	flagVerbose  bool
)

var rootCmd = &cobra.Command{
	Use:   "stegmark",
	Short: "Embed and recover invisible image watermarks",
}

var embedCmd = &cobra.Command{
	Use:   "embed [image-path] [payload]",
	Short: "Hide a payload inside an image",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		imageBytes, err := os.ReadFile(args[0])
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to read image")
		}

		opts := commonOpts()
		if flagFormat != "" {
			opts = append(opts, stegmark.WithOutputFormat(flagFormat))
		}
		if flagQuality > 0 {
			opts = append(opts, stegmark.WithJPEGQuality(flagQuality))
		}
		if flagCompress {
			opts = append(opts, stegmark.WithPayloadCompression())
		}

		out, err := stegmark.EmbedWatermark(context.Background(), imageBytes, args[1], opts...)
		if err != nil {
			log.Fatal().Err(err).Msg("Embedding failed")
		}

		dest := flagOut
		if dest == "" {
			dest = withSuffix(args[0], ".marked")
		}
		if err := os.WriteFile(dest, out, 0o644); err != nil {
			log.Fatal().Err(err).Msg("Failed to write output")
		}
		log.Info().Str("path", dest).Int("bytes", len(out)).Msg("Watermarked image written")
	},
}

var extractCmd = &cobra.Command{
	Use:   "extract [image-path]",
	Short: "Recover the payload hidden in an image",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		imageBytes, err := os.ReadFile(args[0])
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to read image")
		}

		payload, found, err := stegmark.DecodeWatermark(context.Background(), imageBytes, commonOpts()...)
		if err != nil {
			log.Fatal().Err(err).Msg("Extraction failed")
		}
		if !found {
			log.Warn().Msg("No watermark found")
			os.Exit(1)
		}
		fmt.Println(payload)
	},
}

func commonOpts() []stegmark.Option {
	opts := []stegmark.Option{stegmark.WithLogger(log.Logger)}
	if flagECCSeed != 0 {
		opts = append(opts, stegmark.WithECC(flagECCSeed))
	}
	return opts
}

func withSuffix(path, suffix string) string {
	if i := strings.LastIndex(path, "."); i > 0 {
		return path[:i] + suffix + path[i:]
	}
	return path + suffix
}

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})
	zerolog.SetGlobalLevel(zerolog.InfoLevel)

	cobra.OnInitialize(func() {
		if flagVerbose {
			zerolog.SetGlobalLevel(zerolog.DebugLevel)
		}
	})

	embedCmd.Flags().StringVarP(&flagOut, "out", "o", "", "output path (default: <name>.marked.<ext>)")
	embedCmd.Flags().StringVarP(&flagFormat, "format", "f", "", "output format: png, jpeg or qoi (default: source format)")
	embedCmd.Flags().IntVarP(&flagQuality, "quality", "q", 0, "JPEG quality (default 97)")
	embedCmd.Flags().BoolVar(&flagCompress, "compress", false, "zstd-compress the payload before framing")

	rootCmd.PersistentFlags().Int64Var(&flagECCSeed, "ecc", 0, "enable Golay error correction with this shuffle seed")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "debug logging")
	rootCmd.AddCommand(embedCmd, extractCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

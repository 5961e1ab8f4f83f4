package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/vidgrab/vidgrab/internal/config"
	"github.com/vidgrab/vidgrab/internal/download"
	"github.com/vidgrab/vidgrab/internal/platform"
	"github.com/vidgrab/vidgrab/internal/validate"
	"github.com/vidgrab/vidgrab/internal/ytdlp"
	"github.com/vidgrab/vidgrab/utils"
)

var (
	outputDir string
	audioOnly bool
	infoOnly  bool
	debug     bool
)

var VidgrabVersion = "dev"

var rootCmd = &cobra.Command{
	Use:     "vidgrab <url>",
	Short:   "Download videos from YouTube, Instagram, Facebook, and Telegram",
	Version: VidgrabVersion,
	Args:    cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		utils.InitLogger(debug)
		log := utils.GetLogger("cli")

		url := strings.TrimSpace(args[0])
		log.Info().Str("url", url).Msg("starting run")

		if err := validate.URL(url); err != nil {
			log.Error().Err(err).Msg("URL validation failed")
			utils.PrintError(fmt.Sprintf("%s Error: %v", utils.StyleSymbols["fail"], err))
			os.Exit(1)
		}
		if !platform.Supported(url) {
			plat := platform.Detect(url)
			log.Error().Str("platform", plat.String()).Msg("unsupported platform")
			utils.PrintError(fmt.Sprintf(
				"%s Unsupported platform: %s. Supported platforms: YouTube, Instagram, Facebook, Telegram",
				utils.StyleSymbols["fail"], plat))
			os.Exit(1)
		}

		cfg := config.LoadDefault()
		dir := cfg.DownloadDirectory
		if outputDir != "" {
			dir = outputDir
		}

		engine, err := ytdlp.New()
		if err != nil {
			log.Error().Err(err).Msg("engine setup failed")
			utils.PrintError(fmt.Sprintf("%s Error: %v", utils.StyleSymbols["fail"], err))
			os.Exit(1)
		}
		manager, err := download.NewManager(dir, engine)
		if err != nil {
			log.Error().Err(err).Msg("manager setup failed")
			utils.PrintError(fmt.Sprintf("%s Error: %v", utils.StyleSymbols["fail"], err))
			os.Exit(1)
		}

		ctx := context.Background()
		if infoOnly {
			printVideoInfo(ctx, manager, url)
			return
		}

		if !manager.HasFFmpeg() {
			utils.PrintWarning("Warning: ffmpeg not found; videos may not have audio merged properly")
		}
		utils.PrintInfo(fmt.Sprintf("Detected platform: %s", platform.Detect(url).Title()))
		utils.PrintInfo(fmt.Sprintf("Download directory: %s", dir))
		fmt.Println()

		// Ctrl-C flips the token; the attempt then terminates through the
		// cancelled-download failure path at the next progress event.
		token := download.NewCancelToken()
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
		go func() {
			<-sigCh
			token.Cancel()
		}()
		defer signal.Stop(sigCh)

		result := manager.Download(ctx, url, token, func(ev ytdlp.ProgressEvent) {
			utils.PrintProgress(utils.RenderProgress(ev.DownloadedBytes, ev.TotalBytes, ev.SpeedBPS, ev.ETASeconds))
		}, audioOnly)
		fmt.Println()

		if !result.Success {
			log.Error().Str("message", result.ErrorMessage).Msg("download failed")
			utils.PrintError(fmt.Sprintf("%s Error: %s", utils.StyleSymbols["fail"], result.ErrorMessage))
			os.Exit(1)
		}
		log.Info().Str("path", result.FilePath).Msg("download successful")
		utils.PrintSuccess(fmt.Sprintf("%s Downloaded: %s", utils.StyleSymbols["pass"], result.VideoTitle))
		utils.PrintDetail(fmt.Sprintf("  Location: %s", result.FilePath))
		utils.PrintDetail(fmt.Sprintf("  Size: %s | Duration: %s",
			utils.FormatSize(result.FileSize), utils.FormatDuration(result.Duration)))
	},
}

func printVideoInfo(ctx context.Context, manager *download.Manager, url string) {
	info, err := manager.FetchMetadata(ctx, url)
	if err != nil {
		utils.PrintError(fmt.Sprintf("%s Error: %v", utils.StyleSymbols["fail"], err))
		os.Exit(1)
	}
	utils.PrintInfo(fmt.Sprintf("Title:     %s", info.Title))
	utils.PrintInfo(fmt.Sprintf("Uploader:  %s", info.Uploader))
	utils.PrintInfo(fmt.Sprintf("Platform:  %s", info.Platform.Title()))
	utils.PrintInfo(fmt.Sprintf("Duration:  %s", utils.FormatDuration(info.Duration)))
	if len(info.AvailableQualities) > 0 {
		utils.PrintInfo(fmt.Sprintf("Qualities: %s", strings.Join(info.AvailableQualities, ", ")))
	}
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.Flags().StringVarP(&outputDir, "output-dir", "o", "", "Custom download directory (default: ~/Downloads/VideoDownloader)")
	rootCmd.Flags().BoolVarP(&audioOnly, "audio-only", "a", false, "Download audio only and convert to MP3")
	rootCmd.Flags().BoolVar(&infoOnly, "info", false, "Print video metadata without downloading")
	rootCmd.Flags().BoolVar(&debug, "debug", false, "Enable debug logging")
}

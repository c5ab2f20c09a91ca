// brief は1銘柄の企業分析をコマンドラインから実行します。
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"company_research/internal/app/di"
	"company_research/internal/feature/research/domain"
	"company_research/internal/feature/research/transport/handler"
	"company_research/internal/feature/research/usecase"
	"company_research/internal/platform/logging"
)

var version = "dev"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", publicMessage(err))
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "brief",
		Short:        "Generate equity-research briefs from market data, news and an AI model",
		Version:      version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			_ = godotenv.Load(".env")
			// 通常は結果のみを出力し、ログは-vのときだけ表示する
			out := io.Discard
			if v, _ := cmd.Flags().GetBool("verbose"); v {
				out = cmd.ErrOrStderr()
			}
			slog.SetDefault(logging.New(logging.LoadConfig(), out))
		},
	}
	root.PersistentFlags().BoolP("verbose", "v", false, "print pipeline stages and logs to stderr")
	root.AddCommand(newAnalyzeCmd(func(ctx context.Context, opts ...usecase.Option) handler.ResearchUsecase {
		return di.NewResearchUsecase(ctx, opts...)
	}))
	return root
}

// analyzerFactory はステージ通知を受け取るパイプラインを生成します。
type analyzerFactory func(ctx context.Context, opts ...usecase.Option) handler.ResearchUsecase

func newAnalyzeCmd(newAnalyzer analyzerFactory) *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "analyze <TICKER>",
		Short: "Analyze a single ticker and print the report",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if format != formatJSON && format != formatText {
				return fmt.Errorf("unsupported format %q (use %s or %s)", format, formatJSON, formatText)
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			var opts []usecase.Option
			if v, _ := cmd.Flags().GetBool("verbose"); v {
				opts = append(opts, usecase.WithStageObserver(stagePrinter(cmd.ErrOrStderr())))
			}

			report, err := newAnalyzer(ctx, opts...).Analyze(ctx, args[0])
			if err != nil {
				return err
			}
			return render(cmd.OutOrStdout(), report, format)
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", formatText, "output format: text or json")
	return cmd
}

func stagePrinter(w io.Writer) usecase.StageObserver {
	return func(ctx context.Context, ticker string, stage usecase.Stage) {
		fmt.Fprintf(w, "[%s] %s\n", ticker, stage)
	}
}

// publicMessage はResearchErrorの利用者向けメッセージを返します。
func publicMessage(err error) string {
	var rerr *domain.ResearchError
	if errors.As(err, &rerr) && rerr.Message != "" {
		return rerr.Message
	}
	return err.Error()
}

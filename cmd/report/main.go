package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"math/rand/v2"
	"os"
	"sort"
	"text/tabwriter"

	"github.com/sirupsen/logrus"

	"crypto_dashboard/internal/app/port"
	"crypto_dashboard/internal/app/provider"
	"crypto_dashboard/internal/app/service"
	"crypto_dashboard/internal/domain/entity"
	"crypto_dashboard/internal/domain/series"
	"crypto_dashboard/internal/infrastructure/configloader"
	"crypto_dashboard/internal/pkg/format"
)

// logrusAdapter exposes a logrus logger as port.Logger.
type logrusAdapter struct {
	log *logrus.Logger
}

func (a logrusAdapter) fields(args []any) logrus.Fields {
	f := make(logrus.Fields, len(args)/2)
	for i := 0; i+1 < len(args); i += 2 {
		f[fmt.Sprint(args[i])] = args[i+1]
	}
	return f
}

func (a logrusAdapter) Info(msg string, args ...any)  { a.log.WithFields(a.fields(args)).Info(msg) }
func (a logrusAdapter) Debug(msg string, args ...any) { a.log.WithFields(a.fields(args)).Debug(msg) }
func (a logrusAdapter) Warn(msg string, args ...any)  { a.log.WithFields(a.fields(args)).Warn(msg) }
func (a logrusAdapter) Error(msg string, args ...any) { a.log.WithFields(a.fields(args)).Error(msg) }

func main() {
	wallet := flag.String("wallet", "", "wallet address from the holdings fixture")
	configPath := flag.String("config", configloader.ResolvePath("config/config.yml"), "path to config.yml")
	network := flag.String("network", "ethereum", "network for the gas estimate table")
	seed := flag.Uint64("seed", 0, "seed for the history series (0 = random)")
	days := flag.Int("days", 7, "days of synthesized history")
	flag.Parse()

	log := logrus.New()
	log.SetFormatter(&logrus.JSONFormatter{})
	log.SetOutput(os.Stderr)

	if *wallet == "" {
		log.Fatal("-wallet is required")
	}

	cfg, err := configloader.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	level, err := logrus.ParseLevel(cfg.Logging.Level)
	if err != nil {
		log.Warnf("Invalid log level in config: %s. Defaulting to Info.", cfg.Logging.Level)
		level = logrus.InfoLevel
	}
	log.SetLevel(level)
	appLogger := logrusAdapter{log: log}

	holdings, err := provider.NewFixtureHoldingProvider(cfg.Portfolio.HoldingsFile, appLogger)
	if err != nil {
		log.Fatalf("Failed to load holdings: %v", err)
	}
	portfolioService := service.NewPortfolioService(holdings, appLogger, cfg)
	gasService, err := service.NewGasService(cfg.GasProfiles, nil, appLogger, cfg.Series.IntradayNoise)
	if err != nil {
		log.Fatalf("Invalid gas profiles: %v", err)
	}

	var rng *rand.Rand
	if *seed != 0 {
		rng = series.NewRand(*seed)
	}

	ctx := context.Background()
	if err := run(ctx, os.Stdout, portfolioService, gasService, *wallet, *network, *days, rng); err != nil {
		log.WithError(err).Fatal("Report failed")
	}
}

func run(
	ctx context.Context,
	out io.Writer,
	portfolio port.PortfolioService,
	gas port.GasService,
	wallet, network string,
	days int,
	rng *rand.Rand,
) error {
	summary, svcErrs, err := portfolio.Summary(ctx, wallet, port.SummaryOptions{SortByValue: true})
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "Portfolio %s\n", summary.ShortAddress)
	fmt.Fprintf(out, "Total value: %s (%s 24h)\n", summary.Display.TotalValue, summary.Display.Change24h)
	fmt.Fprintf(out, "Diversification score: %s\n\n", summary.Display.DiversificationScore)

	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "SYMBOL\tCHAIN\tBALANCE\tPRICE\tVALUE\t24H")
	for _, h := range summary.Holdings {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n", h.Symbol, h.Chain, format.CompactNumber(h.Balance),
			format.Currency(h.Price), format.Currency(h.Value), format.Percentage(h.Change24hPercent, true))
	}
	fmt.Fprintln(tw)
	fmt.Fprintln(tw, "CHAIN\tVALUE\tSHARE")
	for _, d := range summary.ChainDistribution {
		fmt.Fprintf(tw, "%s\t%s\t%s\n", d.Chain, format.Currency(d.TotalValue), format.Percentage(d.PercentageOfPortfolio, false))
	}
	fmt.Fprintln(tw)
	fmt.Fprintln(tw, "TOKEN\tSHARE\tRISK")
	for _, r := range summary.RiskAssessments {
		fmt.Fprintf(tw, "%s\t%s\t%s\n", r.Key, format.Percentage(r.Percentage, false), r.Level)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	estimates, err := gas.Estimates(ctx, network)
	switch {
	case errors.Is(err, entity.ErrUnknownNetwork):
		fmt.Fprintf(out, "\nNo gas profile for %s\n", network)
	case err != nil:
		return err
	default:
		fmt.Fprintf(out, "\nGas costs on %s (USD)\n", estimates.Profile.Name)
		tw = tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
		fmt.Fprintln(tw, "TX\tGAS LIMIT\tSLOW\tSTANDARD\tFAST\tINSTANT")
		for _, row := range estimates.Rows {
			fmt.Fprintf(tw, "%s\t%d", row.TxType, row.GasLimit)
			for _, e := range row.Estimates {
				fmt.Fprintf(tw, "\t%s", format.Currency(e.USDAmount))
			}
			fmt.Fprintln(tw)
		}
		if err := tw.Flush(); err != nil {
			return err
		}
	}

	history, err := portfolio.History(ctx, wallet, days, rng)
	if err != nil {
		return err
	}
	if len(history) > 0 {
		fmt.Fprintf(out, "\nValue history (%d days, synthesized)\n", days)
		for _, p := range history {
			fmt.Fprintf(out, "%s  %s\n", p.Timestamp, format.Currency(p.ValuesBySymbol[service.PortfolioHistoryKey]))
		}
	}

	if len(svcErrs) > 0 {
		sort.Slice(svcErrs, func(i, j int) bool { return svcErrs[i].Source < svcErrs[j].Source })
		fmt.Fprintln(out, "\nWarnings:")
		for _, e := range svcErrs {
			fmt.Fprintf(out, "  [%s] %s %s\n", e.Source, e.TokenSymbol, e.Message)
		}
	}
	return nil
}

// Package main is a small operator CLI over the data layer. It runs the same
// facade calls the mobile client makes, against either execution mode.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strconv"
	"text/tabwriter"

	"github.com/joho/godotenv"

	"github.com/EquiStack/barn_client/internal/app/domain/chat"
	"github.com/EquiStack/barn_client/internal/app/domain/horse"
	"github.com/EquiStack/barn_client/internal/app/domain/supply"
	"github.com/EquiStack/barn_client/internal/app/facade"
	"github.com/EquiStack/barn_client/internal/app/gateway"
	"github.com/EquiStack/barn_client/internal/app/services/connectivity"
	"github.com/EquiStack/barn_client/internal/config"
	"github.com/EquiStack/barn_client/internal/httputil"
	"github.com/EquiStack/barn_client/pkg/logger"
)

func main() {
	configPath := flag.String("config", "", "path to YAML config file")
	mode := flag.String("mode", "", "override execution mode: live, simulated, auto")
	org := flag.String("org", "", "override organization id")
	horseID := flag.String("horse", "", "horse id for chat context")
	flag.Usage = usage
	flag.Parse()

	if flag.NArg() == 0 {
		usage()
		os.Exit(2)
	}

	_ = godotenv.Load()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fatal("load config: %v", err)
	}
	if *mode != "" {
		cfg.Mode = *mode
	}
	if *org != "" {
		cfg.OrganizationID = *org
	}
	if cfg.OrganizationID == "" {
		cfg.OrganizationID = "demo-org"
	}

	log := logger.New(logger.LoggingConfig{
		Service: "barnctl",
		Level:   cfg.Logging.Level,
		Format:  cfg.Logging.Format,
		Output:  "stderr",
	})

	gw := gateway.New(gateway.Config{
		BaseURL:           cfg.BaseURL,
		Token:             cfg.Token,
		Mode:              gateway.Mode(cfg.Mode),
		DevMode:           cfg.DevMode,
		Hybrid:            cfg.Hybrid,
		Timeout:           cfg.Timeout(),
		RequestsPerSecond: cfg.RequestsPerSecond,
	}, nil, log)

	if gateway.Mode(cfg.Mode) == gateway.ModeAuto && cfg.BaseURL != "" {
		probe := httputil.New(httputil.Config{BaseURL: cfg.BaseURL})
		monitor, err := connectivity.New(probe, cfg.HealthInterval, log)
		if err != nil {
			fatal("connectivity monitor: %v", err)
		}
		monitor.Check()
		gw.WithReachability(monitor)
	}

	api, err := facade.New(gw, cfg.OrganizationID, log)
	if err != nil {
		fatal("%v", err)
	}

	ctx := context.Background()
	switch flag.Arg(0) {
	case "horses":
		listHorses(ctx, api)
	case "horse":
		getHorse(ctx, api, flag.Arg(1))
	case "events":
		listEvents(ctx, api)
	case "supplies":
		listSupplies(ctx, api)
	case "dashboard":
		showDashboard(ctx, api)
	case "chat":
		sendChat(ctx, api, flag.Arg(1), *horseID)
	default:
		usage()
		os.Exit(2)
	}
}

func listHorses(ctx context.Context, api *facade.API) {
	env := api.ListHorses(ctx, horse.ListOptions{})
	if !env.Success {
		fatal("%s", env.Error)
	}
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tBREED\tAGE\tGENDER\tSTATUS")
	for _, h := range env.Data {
		status := "inactive"
		if h.IsActive {
			status = "active"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n", h.ID, h.Name, h.Breed, h.AgeDisplay, h.Gender, status)
	}
	w.Flush()
}

func getHorse(ctx context.Context, api *facade.API, id string) {
	env := api.GetHorse(ctx, id)
	if !env.Success {
		fatal("%s", env.Error)
	}
	h := env.Data
	fmt.Printf("%s (%s)\n", h.Name, h.ID)
	fmt.Printf("  breed:  %s\n", h.Breed)
	fmt.Printf("  age:    %s\n", h.AgeDisplay)
	fmt.Printf("  color:  %s\n", h.Color)
	fmt.Printf("  gender: %s\n", h.Gender)
	fmt.Printf("  health: %s\n", h.HealthStatus)
	fmt.Printf("  owner:  %s\n", h.OwnerName)
}

func listEvents(ctx context.Context, api *facade.API) {
	env := api.ListEvents(ctx)
	if !env.Success {
		fatal("%s", env.Error)
	}
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tWHEN\tTYPE\tTITLE\tHORSE")
	for _, ev := range env.Data {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\n",
			ev.ID, ev.StartsAt.Format("2006-01-02 15:04"), ev.Type, ev.Title, ev.HorseName)
	}
	w.Flush()
}

func listSupplies(ctx context.Context, api *facade.API) {
	env := api.ListSupplies(ctx, supply.ListOptions{})
	if !env.Success {
		fatal("%s", env.Error)
	}
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tCATEGORY\tSTOCK\tREORDER\tFLAGS")
	for _, sp := range env.Data {
		flags := ""
		if sp.IsOutOfStock {
			flags = "OUT"
		} else if sp.IsLowStock {
			flags = "LOW"
		}
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%s\n",
			sp.ID, sp.Name, sp.Category,
			strconv.FormatFloat(sp.CurrentStock, 'f', -1, 64),
			strconv.FormatFloat(sp.ReorderPoint, 'f', -1, 64), flags)
	}
	w.Flush()
}

func showDashboard(ctx context.Context, api *facade.API) {
	env := api.SupplyDashboard(ctx)
	if !env.Success {
		fatal("%s", env.Error)
	}
	d := env.Data
	fmt.Printf("items:          %d\n", d.TotalItems)
	fmt.Printf("low stock:      %d\n", d.LowStockCount)
	fmt.Printf("out of stock:   %d\n", d.OutOfStockCount)
	fmt.Printf("total value:    %.2f\n", d.TotalInventoryValue)
	for _, sp := range d.LowStockItems {
		fmt.Printf("  low: %s (%.1f left, reorder at %.1f)\n", sp.Name, sp.CurrentStock, sp.ReorderPoint)
	}
}

func sendChat(ctx context.Context, api *facade.API, message, horseID string) {
	if message == "" {
		fatal("chat requires a message argument")
	}
	env := api.SendChat(ctx, []chat.Message{{Role: chat.RoleUser, Content: message}}, horseID)
	if !env.Success {
		fatal("%s", env.Error)
	}
	fmt.Println(env.Data.Response)
}

func usage() {
	fmt.Fprintf(os.Stderr, `usage: barnctl [flags] <command>

commands:
  horses             list horses
  horse <id>         show one horse
  events             list calendar events
  supplies           list supplies
  dashboard          show the supply dashboard
  chat <message>     ask the assistant (use -horse for context)

flags:
`)
	flag.PrintDefaults()
}

func fatal(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, "barnctl: "+format+"\n", args...)
	os.Exit(1)
}

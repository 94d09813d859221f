package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/bomsquad/shoplist/internal/domain"
	"github.com/bomsquad/shoplist/internal/pkg/cache"
	"github.com/bomsquad/shoplist/internal/pkg/config"
	"github.com/bomsquad/shoplist/internal/pkg/logger"
	"github.com/bomsquad/shoplist/internal/pkg/restapi"
	"github.com/bomsquad/shoplist/internal/service/migrate"
	"github.com/bomsquad/shoplist/internal/service/pricing"
	"github.com/bomsquad/shoplist/internal/service/reconcile"
	"github.com/bomsquad/shoplist/internal/service/shoppinglist"
)

const usage = `Usage: bomsquad [flags] <command>

Commands:
  list     render the aggregated shopping list
  edit     update one module/component quantity (-component, -module, -quantity)
  migrate  move entries to the inventory (-all, or -component; optional -location)
  delete   remove a module's entries (-module) or the unassigned ones (-anonymous)
`

func main() {
	var (
		configFile = flag.String("config", "", "Path to config file")
		archived   = flag.Bool("archived", false, "Render the archived, read-only view")
		yes        = flag.Bool("yes", false, "Skip confirmation prompts")
		component  = flag.Int64("component", 0, "Component id")
		module     = flag.Int64("module", 0, "Module id")
		quantity   = flag.Int64("quantity", -1, "New quantity for edit")
		location   = flag.String("location", "", "Comma-separated storage location labels")
		all        = flag.Bool("all", false, "Migrate every entry")
		anonymous  = flag.Bool("anonymous", false, "Delete the entries not tied to a module")
	)
	flag.Parse()

	command := flag.Arg(0)
	if command == "" {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	cfg, err := config.Load(*configFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	logger.Init(cfg.LogLevel)

	client, err := restapi.NewClient(restapi.Options{
		BaseURL:   cfg.BaseURL,
		SessionID: cfg.SessionID,
		CSRFToken: cfg.CSRFToken,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	c := cache.New()
	app := &app{
		list:       shoppinglist.NewService(client, c),
		pricing:    pricing.NewService(client, c),
		reconciler: reconcile.NewReconciler(client, c),
		migrator:   migrate.NewMigrator(client, c),
		archived:   *archived,
		confirmed:  *yes,
	}

	var locations []string
	if *location != "" {
		locations = strings.Split(*location, ",")
	}

	ctx := context.Background()
	switch command {
	case "list":
		err = app.renderList(ctx, os.Stdout)
	case "edit":
		err = app.edit(ctx, domain.ComponentID(*component), domain.ModuleID(*module), *quantity)
	case "migrate":
		err = app.migrate(ctx, *all, domain.ComponentID(*component), locations)
	case "delete":
		err = app.delete(ctx, *anonymous, domain.ModuleID(*module))
	default:
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

type app struct {
	list       *shoppinglist.Service
	pricing    *pricing.Service
	reconciler *reconcile.Reconciler
	migrator   *migrate.Migrator
	archived   bool
	confirmed  bool
}

// confirm gates destructive actions behind an explicit prompt.
func (a *app) confirm(action string) bool {
	if a.confirmed {
		return true
	}

	fmt.Printf("%s — continue? [y/N] ", action)
	line, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil {
		return false
	}
	answer := strings.ToLower(strings.TrimSpace(line))
	return answer == "y" || answer == "yes"
}

func (a *app) edit(ctx context.Context, componentID domain.ComponentID, moduleID domain.ModuleID, quantity int64) error {
	if componentID == 0 || moduleID == 0 || quantity < 0 {
		return fmt.Errorf("edit needs -component, -module and -quantity")
	}

	snapshot, err := a.list.Snapshot(ctx)
	if err != nil {
		return fmt.Errorf("list.Snapshot: %w", err)
	}

	var current int64
	for _, g := range snapshot.GroupedByModule {
		if g.ModuleID == moduleID {
			current = g.Quantity(componentID)
		}
	}

	a.reconciler.BeginEdit(componentID, reconcile.FieldQuantity, current)
	a.reconciler.ChangeValue(reconcile.FieldQuantity, quantity)
	if err = a.reconciler.SubmitQuantity(ctx, snapshot, componentID, moduleID); err != nil {
		return fmt.Errorf("reconciler.SubmitQuantity: %w", err)
	}

	fmt.Printf("updated component %d in module %d to %d\n", componentID, moduleID, quantity)
	return nil
}

func (a *app) migrate(ctx context.Context, all bool, componentID domain.ComponentID, location []string) error {
	if all {
		if !a.confirm("migrate the whole shopping list to the inventory") {
			return nil
		}

		locations := make(map[domain.ComponentID][]string)
		if componentID != 0 && len(location) > 0 {
			locations[componentID] = location
		}
		if err := a.migrator.MigrateAll(ctx, locations); err != nil {
			return fmt.Errorf("migrator.MigrateAll: %w", err)
		}
		fmt.Println("shopping list migrated to inventory")
		return nil
	}

	if componentID == 0 {
		return fmt.Errorf("migrate needs -all or -component")
	}

	entries, err := a.list.Entries(ctx)
	if err != nil {
		return fmt.Errorf("list.Entries: %w", err)
	}
	for _, e := range entries {
		if e.Component != nil && e.Component.ID == componentID {
			if err = a.migrator.MigrateOne(ctx, e, location); err != nil {
				return fmt.Errorf("migrator.MigrateOne: %w", err)
			}
			fmt.Printf("component %d migrated to inventory\n", componentID)
			return nil
		}
	}
	return fmt.Errorf("component %d is not on the shopping list", componentID)
}

func (a *app) delete(ctx context.Context, anonymous bool, moduleID domain.ModuleID) error {
	switch {
	case anonymous:
		if !a.confirm("delete every entry not tied to a module") {
			return nil
		}
		if err := a.list.DeleteAnonymous(ctx); err != nil {
			return fmt.Errorf("list.DeleteAnonymous: %w", err)
		}
	case moduleID != 0:
		if !a.confirm(fmt.Sprintf("delete every entry of module %d", moduleID)) {
			return nil
		}
		if err := a.list.DeleteModule(ctx, moduleID); err != nil {
			return fmt.Errorf("list.DeleteModule: %w", err)
		}
	default:
		return fmt.Errorf("delete needs -module or -anonymous")
	}

	fmt.Println("deleted")
	return nil
}

// Command spotcheck is the campus-café availability client: browse cafés
// and their seat availability, keep device-local favorites, and (for
// admins) manage café records against the remote backend.
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"github.com/spotcheck/spotcheck/internal/core/domain"
	"github.com/spotcheck/spotcheck/internal/core/ports"
	"github.com/spotcheck/spotcheck/internal/core/service"
	"github.com/spotcheck/spotcheck/internal/infrastructure/cache"
	"github.com/spotcheck/spotcheck/internal/infrastructure/config"
	debughttp "github.com/spotcheck/spotcheck/internal/infrastructure/http"
	"github.com/spotcheck/spotcheck/internal/infrastructure/localstore"
	"github.com/spotcheck/spotcheck/internal/infrastructure/rest"
	"github.com/spotcheck/spotcheck/pkg/logger"
)

const usage = `spotcheck – campus café availability

Usage:
  spotcheck list [-status all|Available|Filling|Full] [-search term]
  spotcheck show <cafe-id>
  spotcheck fav <cafe-id>
  spotcheck favs
  spotcheck signin -u <username> -p <password>
  spotcheck signup -u <username> -e <email> [-r student|admin] -p <password> -c <confirm>
  spotcheck signout
  spotcheck whoami
  spotcheck admin create|edit|delete|seats|stats [...]
`

type app struct {
	logger  zerolog.Logger
	store   *localstore.Store
	session *service.Session
	cafes   ports.CafeGateway
}

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	ctx := context.Background()

	store, err := localstore.New(cfg.StateDir)
	if err != nil {
		log.Fatal().Err(err).Str("dir", cfg.StateDir).Msg("failed to open local state")
	}

	client := rest.NewClient(cfg.BackendURL, store, log)

	var cafeCache ports.CafeCache = cache.NewMemory()
	if cfg.Redis.Addr != "" {
		rdb, rerr := cache.Connect(ctx, cache.Config{Addr: cfg.Redis.Addr, DB: cfg.Redis.DB})
		if rerr != nil {
			log.Warn().Err(rerr).Msg("redis unavailable, using in-process cache")
		} else {
			cafeCache = cache.NewRedis(rdb, log)
		}
	}

	a := &app{
		logger:  log,
		store:   store,
		session: service.NewSession(rest.NewAuthGateway(client), store, log),
		cafes:   cache.NewCachingGateway(rest.NewCafeGateway(client), cafeCache, log),
	}

	if cfg.DebugAddr != "" {
		debughttp.Start(debughttp.NewRouter(), cfg.DebugAddr, log)
	}

	args := os.Args[1:]
	if len(args) == 0 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	if err := a.run(ctx, args[0], args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func (a *app) run(ctx context.Context, cmd string, args []string) error {
	switch cmd {
	case "list":
		return a.runList(ctx, args)
	case "show":
		return a.runShow(ctx, args)
	case "fav":
		return a.runFav(args)
	case "favs":
		return a.runFavs(ctx)
	case "signin":
		return a.runSignIn(ctx, args)
	case "signup":
		return a.runSignUp(ctx, args)
	case "signout":
		a.session.SignOut()
		fmt.Println("Signed out.")
		return nil
	case "whoami":
		return a.runWhoami()
	case "admin":
		return a.runAdmin(ctx, args)
	default:
		fmt.Fprint(os.Stderr, usage)
		return fmt.Errorf("unknown command %q", cmd)
	}
}

// ── browsing ────────────────────────────────────────────────────────────────

func (a *app) runList(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("list", flag.ExitOnError)
	status := fs.String("status", "all", "server-side status filter")
	search := fs.String("search", "", "client-side name search")
	if err := fs.Parse(args); err != nil {
		return err
	}

	st, err := parseStatusFilter(*status)
	if err != nil {
		return err
	}

	list := service.NewListState(a.cafes, a.store, a.logger)
	list.SetStatusFilter(ctx, st)
	list.SetSearch(*search)

	if list.Phase() == service.PhaseEmpty {
		fmt.Println("No cafés found.")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 2, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tCAFÉ\tLOCATION\tSTATUS\tSEATS\tFAV")
	for _, c := range list.Visible() {
		c = c.ApplyDefaults()
		fav := ""
		if a.session.IsAuthenticated() && list.IsFavorite(c.ID) {
			fav = "❤️"
		}
		fmt.Fprintf(w, "%s\t%s %s\t%s\t%s %s\t%d / %d\t%s\n",
			c.ID, c.Emoji, c.Name, c.Location,
			statusEmoji(c.Status), c.Status,
			c.AvailableSeats, c.TotalSeats, fav)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	s := list.Summary()
	fmt.Printf("\n%d cafés, %d available now, %d open seats\n",
		s.TotalCafes, s.AvailableCafes, s.AvailableSeats)
	return nil
}

func (a *app) runShow(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: spotcheck show <cafe-id>")
	}

	detail := service.NewDetailState(a.cafes, a.logger)
	detail.Load(ctx, args[0])
	if detail.Phase() == service.PhaseNotFound {
		fmt.Println("Café not found")
		return nil
	}

	c := detail.Cafe()
	fmt.Printf("%s %s\n📍 %s\n\n", c.Emoji, c.Name, c.Location)
	if c.Description != "" {
		fmt.Printf("%s\n\n", c.Description)
	}
	fmt.Printf("Status:     %s %s\n", statusEmoji(c.Status), c.Status)
	fmt.Printf("Seats:      %d / %d available\n", c.AvailableSeats, c.TotalSeats)
	fmt.Printf("Occupancy:  %d%% (%d of %d seats taken)\n",
		detail.Occupancy(), c.OccupiedSeats(), c.TotalSeats)
	fmt.Printf("Noise:      %s\n", c.NoiseLevel)
	fmt.Printf("Hours:      Mon–Fri %s–%s, Sat %s–%s, Sun %s–%s\n",
		c.Hours.Weekday.Open, c.Hours.Weekday.Close,
		c.Hours.Saturday.Open, c.Hours.Saturday.Close,
		c.Hours.Sunday.Open, c.Hours.Sunday.Close)
	fmt.Printf("Amenities:  wifi %s · power %s · quiet zone %s · food %s\n",
		checkmark(c.Amenities.Wifi), checkmark(c.Amenities.PowerOutlets),
		checkmark(c.Amenities.QuietZone), checkmark(c.Amenities.FoodAvailable))
	if !c.UpdatedAt.IsZero() {
		fmt.Printf("Updated:    %s\n", c.UpdatedAt.Local().Format("2 Jan 2006 15:04"))
	}
	return nil
}

func (a *app) runFav(args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: spotcheck fav <cafe-id>")
	}
	if !a.session.IsAuthenticated() {
		return domain.ErrNotSignedIn
	}

	list := service.NewListState(a.cafes, a.store, a.logger)
	if list.ToggleFavorite(args[0]) {
		fmt.Println("Added to favorites.")
	} else {
		fmt.Println("Removed from favorites.")
	}
	return nil
}

func (a *app) runFavs(ctx context.Context) error {
	if !a.session.IsAuthenticated() {
		return domain.ErrNotSignedIn
	}

	list := service.NewListState(a.cafes, a.store, a.logger)
	ids := list.Favorites()
	if len(ids) == 0 {
		fmt.Println("No favorite cafés yet.")
		return nil
	}
	for _, id := range ids {
		detail := service.NewDetailState(a.cafes, a.logger)
		detail.Load(ctx, id)
		if detail.Phase() != service.PhaseFound {
			fmt.Printf("❤️ %s (no longer listed)\n", id)
			continue
		}
		c := detail.Cafe()
		fmt.Printf("❤️ %s %s — %s %s, %d / %d seats\n",
			c.Emoji, c.Name, statusEmoji(c.Status), c.Status,
			c.AvailableSeats, c.TotalSeats)
	}
	return nil
}

// ── auth ────────────────────────────────────────────────────────────────────

func (a *app) runSignIn(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("signin", flag.ExitOnError)
	username := fs.String("u", "", "username")
	password := fs.String("p", "", "password")
	if err := fs.Parse(args); err != nil {
		return err
	}

	user, err := a.session.SignIn(ctx, ports.SignInInput{Username: *username, Password: *password})
	if err != nil {
		return err
	}
	fmt.Printf("Welcome back, %s (%s).\n", user.Username, user.Role)
	return nil
}

func (a *app) runSignUp(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("signup", flag.ExitOnError)
	username := fs.String("u", "", "username")
	email := fs.String("e", "", "email address")
	role := fs.String("r", domain.RoleStudent, "role: student or admin")
	password := fs.String("p", "", "password")
	confirm := fs.String("c", "", "password confirmation")
	if err := fs.Parse(args); err != nil {
		return err
	}

	user, err := a.session.SignUp(ctx, ports.SignUpInput{
		Username:     *username,
		Email:        *email,
		Role:         *role,
		Password:     *password,
		PasswordConf: *confirm,
	})
	if err != nil {
		return err
	}
	fmt.Printf("Account created. Welcome, %s (%s).\n", user.Username, user.Role)
	return nil
}

func (a *app) runWhoami() error {
	user := a.session.CurrentUser()
	if user == nil {
		fmt.Println("Not signed in.")
		return nil
	}
	fmt.Printf("%s (%s)\n", user.Username, user.Role)
	return nil
}

// ── admin ───────────────────────────────────────────────────────────────────

func (a *app) runAdmin(ctx context.Context, args []string) error {
	if !a.session.IsAdmin() {
		return fmt.Errorf("admin privileges required")
	}
	if len(args) == 0 {
		return fmt.Errorf("usage: spotcheck admin create|edit|delete|seats|stats [...]")
	}

	admin := service.NewAdminState(a.cafes, a.logger)

	switch args[0] {
	case "create":
		admin.OpenCreate()
		return a.submitDraft(ctx, admin, args[1:], nil)
	case "edit":
		if len(args) < 2 {
			return fmt.Errorf("usage: spotcheck admin edit <cafe-id> [flags]")
		}
		existing, err := a.cafes.GetByID(ctx, args[1])
		if err != nil {
			return fmt.Errorf("café not found: %s", args[1])
		}
		admin.OpenEdit(*existing)
		return a.submitDraft(ctx, admin, args[2:], existing)
	case "delete":
		return a.runAdminDelete(ctx, admin, args[1:])
	case "seats":
		return a.runAdminSeats(ctx, admin, args[1:])
	case "stats":
		return a.runAdminStats(ctx, admin)
	default:
		return fmt.Errorf("unknown admin command %q", args[0])
	}
}

// submitDraft applies only the flags the admin actually passed, so an edit
// merges into the existing record field by field.
func (a *app) submitDraft(ctx context.Context, admin *service.AdminState, args []string, existing *domain.Cafe) error {
	fs := flag.NewFlagSet("cafe", flag.ExitOnError)
	fields := map[string]*string{
		"name":      fs.String("name", "", "café name"),
		"location":  fs.String("location", "", "location"),
		"desc":      fs.String("desc", "", "description"),
		"emoji":     fs.String("emoji", "", "display emoji"),
		"photo":     fs.String("photo", "", "photo URL"),
		"total":     fs.String("total", "", "total seats"),
		"available": fs.String("available", "", "available seats"),
		"status":    fs.String("status", "", "Available, Filling or Full"),
		"noise":     fs.String("noise", "", "Quiet, Moderate or Loud"),
	}
	hours := map[string]*string{
		"weekday":  fs.String("weekday", "", "weekday hours, e.g. 07:00-23:00"),
		"saturday": fs.String("saturday", "", "saturday hours"),
		"sunday":   fs.String("sunday", "", "sunday hours"),
	}
	toggles := fs.String("toggle", "", "comma-separated amenities to flip (wifi,powerOutlets,quietZone,foodAvailable)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	// Flag names → draft field names.
	draftField := map[string]string{
		"name": "name", "location": "location", "desc": "description",
		"emoji": "emoji", "photo": "photo", "total": "totalSeats",
		"available": "availableSeats", "status": "status", "noise": "noiseLevel",
	}

	var ferr error
	fs.Visit(func(f *flag.Flag) {
		if ferr != nil {
			return
		}
		if target, ok := draftField[f.Name]; ok {
			ferr = admin.SetField(target, *fields[f.Name])
			return
		}
		if v, ok := hours[f.Name]; ok {
			opensAt, closesAt, found := strings.Cut(*v, "-")
			if !found {
				ferr = fmt.Errorf("-%s must look like 07:00-23:00", f.Name)
				return
			}
			if ferr = admin.SetHours(f.Name, "open", opensAt); ferr != nil {
				return
			}
			ferr = admin.SetHours(f.Name, "close", closesAt)
		}
	})
	if ferr != nil {
		return ferr
	}
	if *toggles != "" {
		for _, name := range strings.Split(*toggles, ",") {
			if err := admin.ToggleAmenity(strings.TrimSpace(name)); err != nil {
				return err
			}
		}
	}

	if err := admin.Submit(ctx); err != nil {
		return err
	}
	if existing != nil {
		fmt.Println("Café updated.")
	} else {
		fmt.Println("Café created.")
	}
	return nil
}

func (a *app) runAdminDelete(ctx context.Context, admin *service.AdminState, args []string) error {
	fs := flag.NewFlagSet("delete", flag.ExitOnError)
	yes := fs.Bool("y", false, "skip the confirmation prompt")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return fmt.Errorf("usage: spotcheck admin delete [-y] <cafe-id>")
	}

	admin.Refresh(ctx)
	confirm := func(name string) bool {
		if *yes {
			return true
		}
		fmt.Printf("Are you sure you want to delete %q? [y/N] ", name)
		line, _ := bufio.NewReader(os.Stdin).ReadString('\n')
		answer := strings.ToLower(strings.TrimSpace(line))
		return answer == "y" || answer == "yes"
	}

	if err := admin.Delete(ctx, fs.Arg(0), confirm); err != nil {
		return err
	}
	fmt.Println("Done.")
	return nil
}

func (a *app) runAdminSeats(ctx context.Context, admin *service.AdminState, args []string) error {
	fs := flag.NewFlagSet("seats", flag.ExitOnError)
	available := fs.Int("available", -1, "new available seat count")
	notes := fs.String("notes", "", "optional notes")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 || *available < 0 {
		return fmt.Errorf("usage: spotcheck admin seats <cafe-id> -available <n> [-notes text]")
	}
	if err := admin.PatchSeats(ctx, fs.Arg(0), *available, *notes); err != nil {
		return err
	}
	fmt.Println("Seats updated.")
	return nil
}

func (a *app) runAdminStats(ctx context.Context, admin *service.AdminState) error {
	stats, err := admin.Stats(ctx)
	if err != nil {
		a.logger.Warn().Err(err).Msg("stats fetch failed")
		fmt.Println("Statistics unavailable.")
		return nil
	}
	fmt.Printf("Cafés:           %d\n", stats.TotalCafes)
	fmt.Printf("Total seats:     %d\n", stats.TotalSeats)
	fmt.Printf("Available seats: %d\n", stats.AvailableSeats)
	for _, st := range domain.AllStatuses {
		fmt.Printf("%s %-10s %d\n", statusEmoji(st), st, stats.ByStatus[st])
	}
	return nil
}

// ── helpers ─────────────────────────────────────────────────────────────────

func parseStatusFilter(s string) (domain.CafeStatus, error) {
	switch strings.ToLower(s) {
	case "", "all":
		return service.StatusAll, nil
	case "available":
		return domain.StatusAvailable, nil
	case "filling":
		return domain.StatusFilling, nil
	case "full":
		return domain.StatusFull, nil
	}
	return service.StatusAll, fmt.Errorf("unknown status %q (want all, Available, Filling or Full)", s)
}

func statusEmoji(s domain.CafeStatus) string {
	switch s {
	case domain.StatusAvailable:
		return "🟢"
	case domain.StatusFilling:
		return "🟠"
	default:
		return "🔴"
	}
}

func checkmark(b bool) string {
	if b {
		return "✓"
	}
	return "✗"
}

package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"
	"time"

	"travel-planner/internal/api"
	"travel-planner/internal/config"
	"travel-planner/internal/localstore"
	"travel-planner/internal/render"
	"travel-planner/internal/trip"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type app struct {
	cfg    *config.Config
	client *api.Client
	store  *localstore.Store
	seen   *localstore.SeenStore
}

func main() {
	if err := godotenv.Load(); err != nil {
		log.Debug().Msg("no .env file found, relying on environment")
	}

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	zerolog.SetGlobalLevel(zerolog.WarnLevel)
	if os.Getenv("TRAVEL_DEBUG") != "" {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}

	cfg, err := config.NewFromEnv()
	if err != nil {
		fatal(err)
	}

	store, err := localstore.New(cfg.DataDir)
	if err != nil {
		fatal(err)
	}

	a := &app{
		cfg:    cfg,
		client: api.NewClient(cfg, log.Logger),
		store:  store,
		seen:   localstore.NewSeenStore(store),
	}

	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	switch os.Args[1] {
	case "login":
		err = a.cmdLogin(ctx, os.Args[2:])
	case "register":
		err = a.cmdRegister(ctx, os.Args[2:])
	case "profile":
		err = a.cmdProfile(ctx)
	case "update-info":
		err = a.cmdUpdateInfo(ctx, os.Args[2:])
	case "passwd":
		err = a.cmdChangePassword(ctx, os.Args[2:])
	case "tags":
		err = a.cmdTags(ctx, os.Args[2:])
	case "events":
		err = a.cmdEvents(ctx, os.Args[2:])
	case "event":
		err = a.cmdEventDetail(ctx, os.Args[2:])
	case "recs":
		err = a.cmdRecommendations(ctx, os.Args[2:])
	case "search":
		err = a.cmdSearch(ctx, os.Args[2:])
	case "places":
		err = a.cmdPlaces(ctx, os.Args[2:])
	case "reset-seen":
		err = a.cmdResetSeen(os.Args[2:])
	case "plan":
		err = a.cmdPlan(ctx, os.Args[2:])
	case "trip":
		err = a.cmdTrip(os.Args[2:])
	case "remove":
		err = a.cmdRemove(os.Args[2:])
	case "history":
		err = a.cmdHistory(ctx, os.Args[2:])
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "unknown command: %s\n\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}

	if err != nil {
		fatal(err)
	}
}

func fatal(err error) {
	fmt.Fprintln(os.Stderr, "error:", err)
	os.Exit(1)
}

func printUsage() {
	fmt.Println(`travel-planner — Smart Travelling command line client

Usage:
  travel-planner login <username> <password>
  travel-planner register <username> <password>
  travel-planner profile
  travel-planner update-info -email <e> -phone <p>
  travel-planner passwd <old> <new>
  travel-planner tags [tag,tag,...]
  travel-planner events -city <city> -date <yyyy-mm-dd> [-session <s>] [-sort <s>]
  travel-planner event <id>
  travel-planner recs -city <city> -date <yyyy-mm-dd> [-lat <f> -lng <f>] [-max-km <f>]
  travel-planner search <keyword>
  travel-planner places -city <city> [-k <n>]
  travel-planner reset-seen -city <city>
  travel-planner plan -city <city> [-start <yyyy-mm-dd>] [-days <n>] [-people <n>] [-tags t1,t2]
  travel-planner trip [-day <n>]
  travel-planner remove -day <n> -block <id> -index <i>
  travel-planner history [-view <trip-id>] [-delete <trip-id>] [-clear]`)
}

// --- auth ---

func (a *app) cmdLogin(ctx context.Context, args []string) error {
	if len(args) < 2 {
		return fmt.Errorf("usage: login <username> <password>")
	}

	user, err := a.client.Login(ctx, args[0], args[1])
	if err != nil {
		return err
	}
	if err := a.store.Put(localstore.KeyUser, user); err != nil {
		return fmt.Errorf("failed to persist session: %w", err)
	}

	fmt.Printf("Đăng nhập thành công. Xin chào %s!\n", user.Username)
	return nil
}

func (a *app) cmdRegister(ctx context.Context, args []string) error {
	if len(args) < 2 {
		return fmt.Errorf("usage: register <username> <password>")
	}

	message, err := a.client.Register(ctx, args[0], args[1])
	if err != nil {
		return err
	}
	if message == "" {
		message = "Đăng ký thành công."
	}
	fmt.Println(message)
	return nil
}

func (a *app) currentUser() (*api.User, error) {
	var user api.User
	ok, err := a.store.Get(localstore.KeyUser, &user)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("chưa đăng nhập, hãy chạy: travel-planner login")
	}
	return &user, nil
}

func (a *app) cmdProfile(ctx context.Context) error {
	stored, err := a.currentUser()
	if err != nil {
		return err
	}

	user, err := a.client.GetProfile(ctx, stored.ID)
	if err != nil {
		return err
	}

	fmt.Printf("👤 %s (#%d)\n", user.Username, user.ID)
	if user.Email != "" {
		fmt.Printf("   📧 %s\n", user.Email)
	}
	if user.PhoneNumber != "" {
		fmt.Printf("   📞 %s\n", user.PhoneNumber)
	}
	if user.Role != "" {
		fmt.Printf("   🔖 %s\n", user.Role)
	}
	return nil
}

func (a *app) cmdUpdateInfo(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("update-info", flag.ExitOnError)
	email := fs.String("email", "", "email address")
	phone := fs.String("phone", "", "phone number")
	fs.Parse(args)

	user, err := a.currentUser()
	if err != nil {
		return err
	}
	if err := a.client.UpdateInfo(ctx, user.ID, *email, *phone); err != nil {
		return err
	}
	fmt.Println("Đã cập nhật thông tin liên hệ.")
	return nil
}

func (a *app) cmdChangePassword(ctx context.Context, args []string) error {
	if len(args) < 2 {
		return fmt.Errorf("usage: passwd <old password> <new password>")
	}

	user, err := a.currentUser()
	if err != nil {
		return err
	}
	if err := a.client.ChangePassword(ctx, user.ID, args[0], args[1]); err != nil {
		return err
	}
	fmt.Println("Đã đổi mật khẩu.")
	return nil
}

func (a *app) cmdTags(ctx context.Context, args []string) error {
	if len(args) == 0 {
		tags, err := a.client.ListTags(ctx)
		if err != nil {
			return err
		}
		if err := a.store.Put(localstore.KeyTags, tags); err != nil {
			return fmt.Errorf("failed to cache tags: %w", err)
		}
		fmt.Println("🏷 Các thẻ sở thích:", strings.Join(tags, ", "))
		return nil
	}

	user, err := a.currentUser()
	if err != nil {
		return err
	}
	tags := splitCSV(args[0])
	if err := a.client.UpdateUserTags(ctx, user.ID, tags); err != nil {
		return err
	}
	if err := a.store.Put(localstore.PreferredTagsKey(user.ID), tags); err != nil {
		return fmt.Errorf("failed to persist tags: %w", err)
	}
	fmt.Println("Đã cập nhật thẻ sở thích:", strings.Join(tags, ", "))
	return nil
}

// --- events ---

func (a *app) cmdEvents(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("events", flag.ExitOnError)
	city := fs.String("city", "", "city name")
	date := fs.String("date", "", "target date yyyy-mm-dd")
	session := fs.String("session", "", "session filter")
	sortBy := fs.String("sort", "", "sort order")
	fs.Parse(args)

	events, err := a.client.ListEvents(ctx, api.EventFilter{
		City:       *city,
		TargetDate: *date,
		Session:    *session,
		Sort:       *sortBy,
	})
	if err != nil {
		return err
	}

	fmt.Print(render.EventsList(events, *city, *date))
	return nil
}

func (a *app) cmdEventDetail(ctx context.Context, args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("usage: event <id>")
	}
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return fmt.Errorf("invalid event id %q", args[0])
	}

	event, err := a.client.EventDetail(ctx, id)
	if err != nil {
		return err
	}
	fmt.Print(render.EventDetail(event))
	return nil
}

// cmdRecommendations ranks events near a position. Coordinates are explicit
// flags; when absent they are simply omitted from the query.
func (a *app) cmdRecommendations(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("recs", flag.ExitOnError)
	city := fs.String("city", "", "city name")
	date := fs.String("date", "", "target date yyyy-mm-dd")
	session := fs.String("session", "", "session filter")
	lat := fs.Float64("lat", 0, "latitude")
	lng := fs.Float64("lng", 0, "longitude")
	maxKm := fs.Float64("max-km", 0, "maximum distance in km")
	fs.Parse(args)

	filter := api.RecommendationFilter{City: *city, TargetDate: *date, Session: *session}
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "lat":
			filter.Lat = lat
		case "lng":
			filter.Lng = lng
		case "max-km":
			filter.MaxDistanceKm = maxKm
		}
	})

	events, err := a.client.EventRecommendations(ctx, filter)
	if err != nil {
		return err
	}
	fmt.Print(render.EventsList(events, *city, *date))
	return nil
}

func (a *app) cmdSearch(ctx context.Context, args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("usage: search <keyword>")
	}

	events, err := a.client.SearchEventsByName(ctx, strings.Join(args, " "), 5)
	if err != nil {
		return err
	}
	if len(events) == 0 {
		fmt.Println("Không tìm thấy sự kiện nào.")
		return nil
	}
	for _, e := range events {
		fmt.Printf("• #%d %s — %s\n", e.ID, e.Name, e.City)
	}
	return nil
}

// --- visitor places ---

func (a *app) cmdPlaces(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("places", flag.ExitOnError)
	city := fs.String("city", "", "city name")
	k := fs.Int("k", 5, "number of places")
	fs.Parse(args)

	rec, err := a.client.RecommendPlaces(ctx, *city, a.seen.Load(*city), *k)
	if err != nil {
		return err
	}
	if err := a.seen.Replace(*city, rec.SeenIDs); err != nil {
		return fmt.Errorf("failed to persist seen ids: %w", err)
	}

	fmt.Print(render.Places(rec))
	return nil
}

func (a *app) cmdResetSeen(args []string) error {
	fs := flag.NewFlagSet("reset-seen", flag.ExitOnError)
	city := fs.String("city", "", "city name")
	fs.Parse(args)

	if *city == "" {
		return fmt.Errorf("usage: reset-seen -city <city>")
	}
	if err := a.seen.Clear(*city); err != nil {
		return err
	}
	fmt.Printf("Đã xóa lịch sử gợi ý cho %s.\n", *city)
	return nil
}

// --- trip planning ---

func (a *app) cmdPlan(ctx context.Context, args []string) error {
	cfg := trip.DefaultSearchConfig(time.Now())

	fs := flag.NewFlagSet("plan", flag.ExitOnError)
	fs.StringVar(&cfg.City, "city", cfg.City, "city name")
	fs.StringVar(&cfg.StartDate, "start", cfg.StartDate, "start date yyyy-mm-dd")
	fs.IntVar(&cfg.NumDays, "days", cfg.NumDays, "number of days")
	fs.IntVar(&cfg.NumPeople, "people", cfg.NumPeople, "number of people")
	tags := fs.String("tags", "", "preferred tags, comma separated")
	avoid := fs.String("avoid", "", "tags to avoid, comma separated")
	evening := fs.Bool("evening", false, "include the late evening block")
	fs.Parse(args)

	if *tags != "" {
		cfg.PreferredTags = splitCSV(*tags)
	}
	if *avoid != "" {
		cfg.AvoidTags = splitCSV(*avoid)
	}
	if *evening {
		w, _ := cfg.Window(trip.BlockEvening)
		w.Enabled = true
		cfg.SetWindow(trip.BlockEvening, w)
	}

	days, err := a.client.GenerateTrip(ctx, cfg)
	if err != nil {
		return err
	}

	if err := a.store.Put(localstore.KeyTrip, days); err != nil {
		return fmt.Errorf("failed to persist trip: %w", err)
	}
	if err := a.store.Put(localstore.KeySearchConfig, cfg); err != nil {
		return fmt.Errorf("failed to persist search config: %w", err)
	}

	printPlan(cfg, days, 0)
	return nil
}

// loadSession rebuilds a planning session from local storage, preferring a
// trip relayed from the history view when one is pending.
func (a *app) loadSession() (*trip.Session, error) {
	cfg := trip.DefaultSearchConfig(time.Now())
	if _, err := a.store.Get(localstore.KeySearchConfig, &cfg); err != nil {
		return nil, err
	}

	sess := trip.NewSession(cfg)

	var rec api.TripRecord
	if ok, err := a.store.Get(localstore.KeyTripFromHistory, &rec); err == nil && ok {
		cfg.City = rec.City
		cfg.NumDays = rec.NumDays
		if rec.NumPeople > 0 {
			cfg.NumPeople = rec.NumPeople
		}
		sess.Restore(cfg, rec.Days)
		if err := a.store.Delete(localstore.KeyTripFromHistory); err != nil {
			return nil, err
		}
		if err := a.store.Put(localstore.KeyTrip, rec.Days); err != nil {
			return nil, err
		}
		return sess, nil
	}

	var days trip.Days
	ok, err := a.store.Get(localstore.KeyTrip, &days)
	if err != nil {
		return nil, err
	}
	if !ok || len(days) == 0 {
		return nil, fmt.Errorf("chưa có lịch trình nào, hãy chạy: travel-planner plan")
	}
	sess.Restore(cfg, days)
	return sess, nil
}

func (a *app) cmdTrip(args []string) error {
	fs := flag.NewFlagSet("trip", flag.ExitOnError)
	dayNum := fs.Int("day", 1, "day to show")
	fs.Parse(args)

	sess, err := a.loadSession()
	if err != nil {
		return err
	}
	if !sess.SwitchDay(*dayNum - 1) {
		return fmt.Errorf("ngày %d không tồn tại trong lịch trình", *dayNum)
	}

	cfg, days, active := sess.View()
	printPlan(cfg, days, active)
	return nil
}

func (a *app) cmdRemove(args []string) error {
	fs := flag.NewFlagSet("remove", flag.ExitOnError)
	dayNum := fs.Int("day", 1, "day number")
	block := fs.String("block", "", "block id (morning, lunch, afternoon, dinner, evening)")
	index := fs.Int("index", -1, "item index within the block, starting at 0")
	fs.Parse(args)

	sess, err := a.loadSession()
	if err != nil {
		return err
	}
	if !sess.SwitchDay(*dayNum - 1) {
		return fmt.Errorf("ngày %d không tồn tại trong lịch trình", *dayNum)
	}

	removed, err := sess.RemovePlace(*block, *index)
	if err != nil {
		return err
	}

	_, days, active := sess.View()
	if err := a.store.Put(localstore.KeyTrip, days); err != nil {
		return fmt.Errorf("failed to persist trip: %w", err)
	}

	fmt.Printf("Đã xóa %s.\n\n", removed.Name)
	cfg, _, _ := sess.View()
	printPlan(cfg, days, active)
	return nil
}

func printPlan(cfg trip.SearchConfig, days trip.Days, active int) {
	fmt.Print(render.Header(cfg, days))
	fmt.Println()
	fmt.Print(render.DayNavigator(days, active))
	if active >= 0 && active < len(days) {
		fmt.Print(render.DayTimeline(days[active]))
	}
}

// --- history ---

func (a *app) cmdHistory(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("history", flag.ExitOnError)
	view := fs.Int64("view", 0, "relay one saved trip into the planner view")
	del := fs.Int64("delete", 0, "delete one saved trip")
	clear := fs.Bool("clear", false, "delete all saved trips")
	fs.Parse(args)

	user, err := a.currentUser()
	if err != nil {
		return err
	}

	switch {
	case *view > 0:
		rec, err := a.client.TripDetail(ctx, user.ID, *view)
		if err != nil {
			return err
		}
		if err := a.store.Put(localstore.KeyTripFromHistory, rec); err != nil {
			return fmt.Errorf("failed to relay trip: %w", err)
		}
		fmt.Printf("Đã nạp chuyến đi #%d. Xem bằng: travel-planner trip\n", rec.ID)
		return nil

	case *del > 0:
		if err := a.client.DeleteTrip(ctx, user.ID, *del); err != nil {
			return err
		}
		fmt.Printf("Đã xóa chuyến đi #%d.\n", *del)
		return nil

	case *clear:
		if err := a.client.DeleteAllTrips(ctx, user.ID); err != nil {
			return err
		}
		fmt.Println("Đã xóa toàn bộ lịch sử.")
		return nil
	}

	h, err := a.client.TripHistory(ctx, user.ID)
	if err != nil {
		return err
	}

	dates := make([]string, 0, len(h.TripsByDate))
	for d := range h.TripsByDate {
		dates = append(dates, d)
	}
	sort.Sort(sort.Reverse(sort.StringSlice(dates)))

	fmt.Print(render.History(h, dates))
	return nil
}

func splitCSV(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

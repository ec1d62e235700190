// hotelctl is a terminal client for the hotel booking backend: browsing
// rooms, creating and paying for bookings, managing a profile, and the admin
// operations, all against the same REST API the web front end uses.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/moharam-dev/hotelbook/config"
	"github.com/moharam-dev/hotelbook/internal/api"
	"github.com/moharam-dev/hotelbook/internal/checkout"
	"github.com/moharam-dev/hotelbook/internal/controller"
	"github.com/moharam-dev/hotelbook/internal/derived"
	"github.com/moharam-dev/hotelbook/internal/domain"
	"github.com/moharam-dev/hotelbook/internal/httpx"
	"github.com/moharam-dev/hotelbook/internal/payment"
	"github.com/moharam-dev/hotelbook/internal/session"
	"github.com/moharam-dev/hotelbook/internal/validate"
)

const usage = `usage: hotelctl <command> [flags]

  login            sign in with email and password
  logout           clear the stored session
  register         create an account
  me               show the signed-in profile
  profile          update the signed-in profile
  rooms            list rooms (use -type/-min/-max to search)
  room             show one room with its reviews
  book             create a booking for a room
  my-bookings      list your bookings
  cancel           cancel one of your bookings
  pay              pay for a booking by card
  review           leave a review for a room
  reviews          list a room's reviews
  contact          send a message to the hotel
  admin            administrative operations (see: hotelctl admin)
`

func main() {
	_ = godotenv.Load()

	log := logrus.New()
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	if os.Getenv("DEBUG") == "" {
		log.SetLevel(logrus.WarnLevel)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, log, os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, "error:", present(err))
		os.Exit(1)
	}
}

// present maps call failures through the shared extraction chain and leaves
// local errors (validation, usage) as they are.
func present(err error) string {
	var apiErr *httpx.APIError
	if errors.As(err, &apiErr) {
		return apiErr.Message()
	}
	if errors.Is(err, httpx.ErrNetwork) {
		return "Network error"
	}
	return err.Error()
}

func run(ctx context.Context, log *logrus.Logger, args []string) error {
	if len(args) == 0 {
		fmt.Fprint(os.Stderr, usage)
		return fmt.Errorf("no command given")
	}

	cfgPath := os.Getenv("CONFIG_PATH")
	var cfg *config.Config
	var err error
	if cfgPath != "" {
		cfg, err = config.LoadConfig(cfgPath)
	} else if _, statErr := os.Stat("config.yaml"); statErr == nil {
		cfg, err = config.LoadConfig("config.yaml")
	} else {
		cfg = config.Default()
	}
	if err != nil {
		return err
	}
	if cfg.API.BaseURL == "" {
		return fmt.Errorf("no API base URL configured; set API_BASE_URL or api.base_url in config.yaml")
	}

	app := newApp(cfg, log)

	cmd, rest := args[0], args[1:]
	switch cmd {
	case "login":
		return app.login(ctx, rest)
	case "logout":
		return app.store.Clear()
	case "register":
		return app.register(ctx, rest)
	case "me":
		return app.me(ctx)
	case "profile":
		return app.profile(ctx, rest)
	case "rooms":
		return app.rooms(ctx, rest)
	case "room":
		return app.room(ctx, rest)
	case "book":
		return app.book(ctx, rest)
	case "my-bookings":
		return app.myBookings(ctx)
	case "cancel":
		return app.cancel(ctx, rest)
	case "pay":
		return app.pay(ctx, rest)
	case "review":
		return app.review(ctx, rest)
	case "reviews":
		return app.reviews(ctx, rest)
	case "contact":
		return app.contact(ctx, rest)
	case "admin":
		return app.admin(ctx, rest)
	default:
		fmt.Fprint(os.Stderr, usage)
		return fmt.Errorf("unknown command %q", cmd)
	}
}

type app struct {
	cfg   *config.Config
	store session.Store
	api   *api.Client
	log   *logrus.Logger
}

func newApp(cfg *config.Config, log *logrus.Logger) *app {
	var store session.Store
	if cfg.Session.Redis.Addr != "" {
		terminal, _ := os.Hostname()
		if terminal == "" {
			terminal = "default"
		}
		store = session.NewRedisStore(cfg.Session.Redis, terminal)
	} else {
		store = session.NewFileStore(cfg.Session.Path())
	}

	httpClient := httpx.New(cfg.API.BaseURL, cfg.API.Timeout(), store, httpx.WithLogger(log))
	return &app{
		cfg:   cfg,
		store: store,
		api:   api.NewClient(httpClient),
		log:   log,
	}
}

// storeSession persists the token plus a profile derived from its claims.
func (a *app) storeSession(resp *api.AuthResponse) error {
	if resp.Token == "" {
		return fmt.Errorf("server returned no token")
	}

	var user *domain.User
	if claims, err := session.DecodeClaims(resp.Token); err == nil {
		var prev *domain.User
		if resp.User != nil {
			normalized := resp.User.Normalize()
			prev = &normalized
		}
		user = claims.User(prev)
	} else if resp.User != nil {
		normalized := resp.User.Normalize()
		user = &normalized
	}

	if err := a.store.Set(resp.Token, user); err != nil {
		return err
	}
	if resp.RefreshToken != "" {
		return a.store.SetRefreshToken(resp.RefreshToken)
	}
	return nil
}

func (a *app) login(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("login", flag.ExitOnError)
	email := fs.String("email", "", "account email")
	password := fs.String("password", "", "account password")
	fs.Parse(args)
	if *email == "" || *password == "" {
		return fmt.Errorf("both -email and -password are required")
	}

	resp, err := a.api.Login(ctx, api.Credentials{Email: *email, Password: *password})
	if err != nil {
		return err
	}
	if err := a.storeSession(resp); err != nil {
		return err
	}
	fmt.Println("signed in")
	return nil
}

func (a *app) register(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("register", flag.ExitOnError)
	name := fs.String("name", "", "full name")
	email := fs.String("email", "", "account email")
	password := fs.String("password", "", "account password")
	phone := fs.String("phone", "", "phone number")
	fs.Parse(args)

	sanitized := validate.SanitizePhone(*phone)
	if err := validate.Profile(*name, *email, sanitized); err != nil {
		return err
	}

	resp, err := a.api.Register(ctx, api.RegisterInput{
		FullName:    *name,
		Email:       *email,
		Password:    *password,
		PhoneNumber: sanitized,
	})
	if err != nil {
		return err
	}
	if err := a.storeSession(resp); err != nil {
		return err
	}
	fmt.Println("account created")
	return nil
}

func (a *app) me(ctx context.Context) error {
	user, err := a.api.Me(ctx)
	if err != nil {
		return err
	}
	fmt.Printf("%s <%s>\n", user.FullName, user.Email)
	if user.PhoneNumber != "" {
		fmt.Println("phone:", user.PhoneNumber)
	}
	fmt.Println("role: ", user.Role)
	return nil
}

func (a *app) profile(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("profile", flag.ExitOnError)
	name := fs.String("name", "", "new full name")
	email := fs.String("email", "", "new email")
	phone := fs.String("phone", "", "new phone number")
	fs.Parse(args)

	ctl := controller.NewProfileController(a.api, a.store, a.log)
	if err := ctl.Load(); err != nil {
		return err
	}
	if *name != "" {
		ctl.SetFullName(*name)
	}
	if *email != "" {
		ctl.SetEmail(*email)
	}
	if *phone != "" {
		ctl.SetPhoneNumber(*phone)
	}

	user, err := ctl.Submit(ctx)
	if err != nil {
		return err
	}
	fmt.Printf("profile updated: %s <%s>\n", user.FullName, user.Email)
	return nil
}

func (a *app) rooms(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("rooms", flag.ExitOnError)
	roomType := fs.String("type", "", "filter by room type")
	minPrice := fs.Float64("min", 0, "minimum nightly price")
	maxPrice := fs.Float64("max", 0, "maximum nightly price")
	fs.Parse(args)

	var rooms []domain.Room
	var err error
	if *roomType != "" || *minPrice > 0 || *maxPrice > 0 {
		rooms, err = a.api.SearchRooms(ctx, api.RoomSearch{Type: *roomType, MinPrice: *minPrice, MaxPrice: *maxPrice})
	} else {
		rooms, err = a.api.Rooms(ctx)
	}
	if err != nil {
		return err
	}

	for _, room := range rooms {
		fmt.Printf("%-8s  room %-6s %-12s %8.2f/night\n", room.ID, room.Number, room.Type, room.PricePerNight)
	}
	return nil
}

func (a *app) room(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("room", flag.ExitOnError)
	id := fs.String("id", "", "room id")
	fs.Parse(args)
	if *id == "" {
		return fmt.Errorf("-id is required")
	}

	ctl := controller.NewRoomDetailsController(a.api, a.store)
	if err := ctl.Load(ctx, domain.ID(*id)); err != nil {
		return err
	}

	room := ctl.Room()
	fmt.Printf("room %s (%s), %.2f/night\n", room.Number, room.Type, room.PricePerNight)
	if room.Description != "" {
		fmt.Println(room.Description)
	}
	average, count := ctl.Rating()
	fmt.Printf("rating: %.1f from %d reviews\n", average, count)
	for _, review := range ctl.Reviews() {
		fmt.Printf("  [%.0f/5] %s: %s\n", review.Rating, review.UserName, review.Comment)
	}
	return nil
}

func parseDate(value string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	t, err := time.Parse("2006-01-02", value)
	if err != nil {
		return nil, fmt.Errorf("invalid date %q, want YYYY-MM-DD", value)
	}
	return &t, nil
}

func (a *app) book(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("book", flag.ExitOnError)
	roomID := fs.String("room", "", "room id")
	checkIn := fs.String("from", "", "check-in date (YYYY-MM-DD)")
	checkOut := fs.String("to", "", "check-out date (YYYY-MM-DD)")
	services := fs.String("services", "", "comma-separated service ids")
	fs.Parse(args)
	if *roomID == "" {
		return fmt.Errorf("-room is required")
	}

	start, err := parseDate(*checkIn)
	if err != nil {
		return err
	}
	end, err := parseDate(*checkOut)
	if err != nil {
		return err
	}

	ctl := controller.NewBookingFormController(a.api)
	if err := ctl.Load(ctx, domain.ID(*roomID)); err != nil {
		return err
	}
	ctl.SetDates(start, end)
	for _, raw := range strings.Split(*services, ",") {
		if raw = strings.TrimSpace(raw); raw != "" {
			ctl.ToggleService(domain.ID(raw))
		}
	}

	quote := ctl.Quote()
	fmt.Printf("%d night(s): room %.2f + services %.2f = %.2f\n",
		quote.Nights, quote.RoomSubtotal, quote.ServicesSubtotal, quote.Total)

	resp, err := ctl.Submit(ctx)
	if err != nil {
		return err
	}
	fmt.Println("booking created:", resp.BookingID)
	fmt.Println("pay with: hotelctl pay -booking", resp.BookingID)
	return nil
}

func (a *app) myBookings(ctx context.Context) error {
	bookings, err := a.api.MyBookings(ctx)
	if err != nil {
		return err
	}
	printBookings(derived.SortBookings(bookings))
	return nil
}

func printBookings(bookings []domain.Booking) {
	for _, b := range bookings {
		from, to := "?", "?"
		if b.StartDate != nil {
			from = b.StartDate.Format("2006-01-02")
		}
		if b.EndDate != nil {
			to = b.EndDate.Format("2006-01-02")
		}
		fmt.Printf("%-8s  room %-6s %s .. %s  %-10s %8.2f\n",
			b.ID, b.RoomNumber, from, to, b.Status, b.TotalAmount)
	}
}

func (a *app) cancel(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("cancel", flag.ExitOnError)
	id := fs.String("booking", "", "booking id")
	fs.Parse(args)
	if *id == "" {
		return fmt.Errorf("-booking is required")
	}
	if err := a.api.CancelBooking(ctx, domain.ID(*id)); err != nil {
		return err
	}
	fmt.Println("booking cancelled")
	return nil
}

func (a *app) pay(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("pay", flag.ExitOnError)
	id := fs.String("booking", "", "booking id")
	number := fs.String("card", "", "card number")
	expMonth := fs.Int("month", 0, "card expiry month")
	expYear := fs.Int("year", 0, "card expiry year")
	cvc := fs.String("cvc", "", "card security code")
	fs.Parse(args)
	if *id == "" || *number == "" || *expMonth == 0 || *expYear == 0 || *cvc == "" {
		return fmt.Errorf("-booking, -card, -month, -year and -cvc are all required")
	}
	if a.cfg.Payment.PublishableKey == "" {
		return fmt.Errorf("no payment key configured; set STRIPE_PUBLISHABLE_KEY")
	}

	processor := payment.NewStripe(a.cfg.Payment.PublishableKey, a.log)
	flow := checkout.NewFlow(a.api, processor, a.log)

	if err := flow.Load(ctx, domain.ID(*id)); err != nil {
		return err
	}
	if booking := flow.Booking(); booking != nil {
		fmt.Printf("paying %.2f for booking %s\n", booking.TotalAmount, booking.ID)
	}

	card := payment.Card{Number: *number, ExpMonth: *expMonth, ExpYear: *expYear, CVC: *cvc}
	if err := flow.Submit(ctx, card); err != nil {
		return err
	}
	fmt.Println("payment complete")
	return nil
}

func (a *app) review(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("review", flag.ExitOnError)
	roomID := fs.String("room", "", "room id")
	rating := fs.Float64("rating", 0, "rating from 1 to 5")
	comment := fs.String("comment", "", "review text")
	fs.Parse(args)
	if *roomID == "" {
		return fmt.Errorf("-room is required")
	}

	ctl := controller.NewRoomDetailsController(a.api, a.store)
	if err := ctl.Load(ctx, domain.ID(*roomID)); err != nil {
		return err
	}
	if err := ctl.SubmitReview(ctx, *rating, *comment); err != nil {
		return err
	}
	fmt.Println("review submitted")
	return nil
}

func (a *app) reviews(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("reviews", flag.ExitOnError)
	roomID := fs.String("room", "", "room id")
	fs.Parse(args)
	if *roomID == "" {
		return fmt.Errorf("-room is required")
	}

	reviews, err := a.api.Reviews(ctx, domain.ID(*roomID))
	if err != nil {
		return err
	}
	for _, r := range reviews {
		when := ""
		if r.Date != nil {
			when = " on " + r.Date.Format("2006-01-02")
		}
		fmt.Printf("[%.0f/5] %s%s: %s\n", r.Rating, r.UserName, when, r.Comment)
	}
	return nil
}

func (a *app) contact(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("contact", flag.ExitOnError)
	name := fs.String("name", "", "your name")
	email := fs.String("email", "", "your email")
	message := fs.String("message", "", "message text")
	fs.Parse(args)

	if err := validate.ContactMessage(*name, *email, *message); err != nil {
		return err
	}
	if err := a.api.SendMessage(ctx, api.ContactInput{Name: *name, Email: *email, Message: *message}); err != nil {
		return err
	}
	fmt.Println("message sent")
	return nil
}

const adminUsage = `usage: hotelctl admin <command> [flags]

  stats            dashboard statistics
  users            list users (-filter all|admin|user, -page N)
  promote          grant the admin role (-user ID)
  demote           remove the admin role (-user ID)
  bookings         list all bookings
  approve          approve a booking (-booking ID)
  reject           reject a booking (-booking ID)
  complete         complete a booking (-booking ID)
  services         list services
  add-service      create a service (-name, -price)
  del-service      delete a service (-id)
  del-room         delete a room (-id)
  messages         list contact messages
  read-message     mark a message read (-id)
`

func (a *app) admin(ctx context.Context, args []string) error {
	if len(args) == 0 {
		fmt.Fprint(os.Stderr, adminUsage)
		return fmt.Errorf("no admin command given")
	}

	ctl := controller.NewDashboardController(a.api, a.store, a.log)
	if err := ctl.Load(ctx); err != nil {
		return err
	}

	cmd, rest := args[0], args[1:]
	switch cmd {
	case "stats":
		return a.adminStats(ctl)
	case "users":
		return a.adminUsers(ctl, rest)
	case "promote", "demote":
		fs := flag.NewFlagSet(cmd, flag.ExitOnError)
		user := fs.String("user", "", "user id")
		fs.Parse(rest)
		if *user == "" {
			return fmt.Errorf("-user is required")
		}
		if cmd == "promote" {
			return ctl.PromoteUser(ctx, domain.ID(*user))
		}
		return ctl.DemoteUser(ctx, domain.ID(*user))
	case "bookings":
		printBookings(ctl.Bookings())
		return nil
	case "approve", "reject", "complete":
		fs := flag.NewFlagSet(cmd, flag.ExitOnError)
		booking := fs.String("booking", "", "booking id")
		fs.Parse(rest)
		if *booking == "" {
			return fmt.Errorf("-booking is required")
		}
		switch cmd {
		case "approve":
			return ctl.ApproveBooking(ctx, domain.ID(*booking))
		case "reject":
			return ctl.RejectBooking(ctx, domain.ID(*booking))
		default:
			return ctl.CompleteBooking(ctx, domain.ID(*booking))
		}
	case "services":
		for _, s := range ctl.Services() {
			fmt.Printf("%-8s  %-20s %8.2f\n", s.ID, s.Name, s.Price)
		}
		return nil
	case "add-service":
		fs := flag.NewFlagSet(cmd, flag.ExitOnError)
		name := fs.String("name", "", "service name")
		price := fs.Float64("price", 0, "service price")
		fs.Parse(rest)
		if *name == "" {
			return fmt.Errorf("-name is required")
		}
		return ctl.CreateService(ctx, api.ServiceInput{Name: *name, Price: *price})
	case "del-service":
		fs := flag.NewFlagSet(cmd, flag.ExitOnError)
		id := fs.String("id", "", "service id")
		fs.Parse(rest)
		if *id == "" {
			return fmt.Errorf("-id is required")
		}
		return ctl.DeleteService(ctx, domain.ID(*id))
	case "del-room":
		fs := flag.NewFlagSet(cmd, flag.ExitOnError)
		id := fs.String("id", "", "room id")
		fs.Parse(rest)
		if *id == "" {
			return fmt.Errorf("-id is required")
		}
		return ctl.DeleteRoom(ctx, domain.ID(*id))
	case "messages":
		messages, err := a.api.Messages(ctx)
		if err != nil {
			return err
		}
		for _, m := range messages {
			read := " "
			if m.Read {
				read = "r"
			}
			fmt.Printf("%-8s [%s] %s <%s>: %s\n", m.ID, read, m.Name, m.Email, m.Body)
		}
		return nil
	case "read-message":
		fs := flag.NewFlagSet(cmd, flag.ExitOnError)
		id := fs.String("id", "", "message id")
		fs.Parse(rest)
		if *id == "" {
			return fmt.Errorf("-id is required")
		}
		return a.api.MarkMessageRead(ctx, domain.ID(*id))
	default:
		fmt.Fprint(os.Stderr, adminUsage)
		return fmt.Errorf("unknown admin command %q", cmd)
	}
}

func (a *app) adminStats(ctl *controller.DashboardController) error {
	stats := ctl.Stats()
	fmt.Println("accounts:            ", stats.Accounts)
	fmt.Println("total bookings:      ", stats.TotalBookings)
	fmt.Println("active bookings:     ", stats.ActiveBookings)
	fmt.Println("users with bookings: ", stats.UsersWithBookings)
	fmt.Println("rooms booked now:    ", stats.RoomsBookedNow)
	fmt.Println("rooms free now:      ", stats.RoomsFreeNow)
	if stats.NextVacancy != nil {
		fmt.Printf("next vacancy:         room %s on %s\n",
			stats.NextVacancy.RoomNumber, stats.NextVacancy.Date.Format("2006-01-02"))
	}
	return nil
}

func (a *app) adminUsers(ctl *controller.DashboardController, args []string) error {
	fs := flag.NewFlagSet("users", flag.ExitOnError)
	filter := fs.String("filter", "all", "all, admin or user")
	page := fs.Int("page", 1, "page number")
	fs.Parse(args)

	ctl.SetUserFilter(derived.UserFilter(*filter))
	ctl.SetUsersPage(*page)
	for _, u := range ctl.VisibleUsers() {
		badge := ""
		if u.IsAdmin() {
			badge = " [admin]"
		}
		fmt.Printf("%-8s  %s <%s>%s\n", u.ID, u.FullName, u.Email, badge)
	}
	total := derived.TotalPages(derived.FilterUsers(ctl.Users(), derived.UserFilter(*filter)))
	fmt.Printf("page %s of %s\n", strconv.Itoa(*page), strconv.Itoa(total))
	return nil
}

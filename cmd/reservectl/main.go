package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"text/tabwriter"

	"reservation-api/client"
	"reservation-api/models"

	flag "github.com/spf13/pflag"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		var apiErr *client.APIError
		if errors.As(err, &apiErr) {
			fmt.Fprintf(os.Stderr, "error: %s\n", apiErr.Message)
		} else {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
		}
		os.Exit(1)
	}
}

type command struct {
	usage string
	run   func(ctx context.Context, c *client.Client, cache *client.SessionCache, args []string) error
}

var commands = map[string]command{
	"signup":            {"signup --name N --email E --password P [--role admin]", runSignup},
	"login":             {"login --email E --password P", runLogin},
	"logout":            {"logout", runLogout},
	"whoami":            {"whoami", runWhoami},
	"restaurants":       {"restaurants", runRestaurants},
	"restaurant-add":    {"restaurant-add --name N --location L --description D", runRestaurantAdd},
	"restaurant-update": {"restaurant-update ID --name N --location L --description D", runRestaurantUpdate},
	"restaurant-delete": {"restaurant-delete ID", runRestaurantDelete},
	"reserve":           {"reserve --restaurant ID --date YYYY-MM-DD --time HH:MM --people N", runReserve},
	"reservations":      {"reservations [--all]", runReservations},
	"reservation-edit":  {"reservation-edit ID --date YYYY-MM-DD --time HH:MM --people N", runReservationEdit},
	"reservation-del":   {"reservation-del ID", runReservationDelete},
	"cancel":            {"cancel ID", runCancel},
}

func usage() {
	fmt.Fprintf(os.Stderr, "Usage: reservectl [--server URL] [--session-file PATH] <command> [flags]\n\nCommands:\n")
	for _, name := range []string{
		"signup", "login", "logout", "whoami", "restaurants", "restaurant-add", "restaurant-update",
		"restaurant-delete", "reserve", "reservations", "reservation-edit", "reservation-del", "cancel",
	} {
		fmt.Fprintf(os.Stderr, "  %s\n", commands[name].usage)
	}
}

func run(args []string) error {
	global := flag.NewFlagSet("reservectl", flag.ContinueOnError)
	global.SetInterspersed(false)
	global.Usage = usage
	server := global.String("server", envOr("RESERVECTL_SERVER", "http://localhost:5000"), "API base URL")
	sessionFile := global.String("session-file", "", "session cache path (default: user config dir)")
	if err := global.Parse(args); err != nil {
		return err
	}
	rest := global.Args()
	if len(rest) == 0 {
		usage()
		return errors.New("command required")
	}
	cmd, ok := commands[rest[0]]
	if !ok {
		usage()
		return fmt.Errorf("unknown command: %q", rest[0])
	}

	path := *sessionFile
	if path == "" {
		p, err := client.DefaultSessionPath()
		if err != nil {
			return err
		}
		path = p
	}
	cache := client.NewSessionCache(path)
	c := client.New(*server, cache)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return cmd.run(ctx, c, cache, rest[1:])
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func parseID(fs *flag.FlagSet) (uint, error) {
	if fs.NArg() != 1 {
		return 0, errors.New("exactly one ID argument required")
	}
	id, err := strconv.ParseUint(fs.Arg(0), 10, 64)
	if err != nil || id == 0 {
		return 0, fmt.Errorf("invalid ID %q", fs.Arg(0))
	}
	return uint(id), nil
}

func runSignup(ctx context.Context, c *client.Client, _ *client.SessionCache, args []string) error {
	fs := flag.NewFlagSet("signup", flag.ContinueOnError)
	name := fs.String("name", "", "display name")
	email := fs.String("email", "", "email address")
	password := fs.String("password", "", "password")
	role := fs.String("role", "", "user or admin (default user)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	id, err := c.Signup(ctx, *name, *email, *password, models.UserRole(*role))
	if err != nil {
		return err
	}
	fmt.Printf("User created successfully. id=%d\n", id)
	return nil
}

func runLogin(ctx context.Context, c *client.Client, _ *client.SessionCache, args []string) error {
	fs := flag.NewFlagSet("login", flag.ContinueOnError)
	email := fs.String("email", "", "email address")
	password := fs.String("password", "", "password")
	if err := fs.Parse(args); err != nil {
		return err
	}
	s, err := c.Login(ctx, *email, *password)
	if err != nil {
		return err
	}
	who := "User"
	if s.IsAdmin() {
		who = "Admin"
	}
	fmt.Printf("Login successful. Welcome back, %s!\n", who)
	return nil
}

func runLogout(ctx context.Context, c *client.Client, _ *client.SessionCache, _ []string) error {
	if err := c.Logout(ctx); err != nil {
		return err
	}
	fmt.Println("Logged out.")
	return nil
}

func runWhoami(_ context.Context, _ *client.Client, cache *client.SessionCache, _ []string) error {
	s, ok, err := cache.Load()
	if err != nil {
		return err
	}
	if !ok {
		fmt.Println("not logged in")
		return nil
	}
	fmt.Printf("user %d (%s)\n", s.UserID, s.Role)
	return nil
}

func runRestaurants(ctx context.Context, c *client.Client, _ *client.SessionCache, _ []string) error {
	list, err := c.Restaurants(ctx)
	if err != nil {
		return err
	}
	tw := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tLOCATION\tDESCRIPTION")
	for _, r := range list {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\n", r.ID, r.Name, r.Location, r.Description)
	}
	return tw.Flush()
}

func restaurantFlags(name string) (*flag.FlagSet, *client.RestaurantInput) {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	in := &client.RestaurantInput{}
	fs.StringVar(&in.Name, "name", "", "restaurant name")
	fs.StringVar(&in.Location, "location", "", "location")
	fs.StringVar(&in.Description, "description", "", "description")
	return fs, in
}

func runRestaurantAdd(ctx context.Context, c *client.Client, _ *client.SessionCache, args []string) error {
	fs, in := restaurantFlags("restaurant-add")
	if err := fs.Parse(args); err != nil {
		return err
	}
	id, err := c.CreateRestaurant(ctx, *in)
	if err != nil {
		return err
	}
	fmt.Printf("Restaurant added successfully. id=%d\n", id)
	return nil
}

func runRestaurantUpdate(ctx context.Context, c *client.Client, _ *client.SessionCache, args []string) error {
	fs, in := restaurantFlags("restaurant-update")
	if err := fs.Parse(args); err != nil {
		return err
	}
	id, err := parseID(fs)
	if err != nil {
		return err
	}
	if err := c.UpdateRestaurant(ctx, id, *in); err != nil {
		return err
	}
	fmt.Println("Restaurant updated successfully.")
	return nil
}

func runRestaurantDelete(ctx context.Context, c *client.Client, _ *client.SessionCache, args []string) error {
	fs := flag.NewFlagSet("restaurant-delete", flag.ContinueOnError)
	if err := fs.Parse(args); err != nil {
		return err
	}
	id, err := parseID(fs)
	if err != nil {
		return err
	}
	if err := c.DeleteRestaurant(ctx, id); err != nil {
		return err
	}
	fmt.Println("Restaurant deleted successfully.")
	return nil
}

func reservationFlags(name string) (*flag.FlagSet, *client.ReservationInput) {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	in := &client.ReservationInput{}
	fs.StringVar(&in.Date, "date", "", "date, YYYY-MM-DD")
	fs.StringVar(&in.Time, "time", "", "time, HH:MM")
	fs.IntVar(&in.PeopleCount, "people", 0, "party size")
	return fs, in
}

func runReserve(ctx context.Context, c *client.Client, _ *client.SessionCache, args []string) error {
	fs, in := reservationFlags("reserve")
	fs.UintVar(&in.RestaurantID, "restaurant", 0, "restaurant ID")
	if err := fs.Parse(args); err != nil {
		return err
	}
	id, err := c.Reserve(ctx, *in)
	if err != nil {
		return err
	}
	fmt.Printf("Reservation created successfully. id=%d\n", id)
	return nil
}

func runReservations(ctx context.Context, c *client.Client, _ *client.SessionCache, args []string) error {
	fs := flag.NewFlagSet("reservations", flag.ContinueOnError)
	all := fs.Bool("all", false, "list every reservation (admin)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	var (
		list []models.ReservationView
		err  error
	)
	if *all {
		list, err = c.AllReservations(ctx)
	} else {
		list, err = c.MyReservations(ctx)
	}
	if err != nil {
		return err
	}
	tw := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tUSER\tRESTAURANT\tDATE\tTIME\tPEOPLE\tSTATUS")
	for _, r := range list {
		user := r.UserName
		if user == "" {
			user = strconv.FormatUint(uint64(r.UserID), 10)
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%d\t%s\n",
			r.ID, user, r.RestaurantName, r.Date, r.Time, r.PeopleCount, r.Status)
	}
	return tw.Flush()
}

func runReservationEdit(ctx context.Context, c *client.Client, _ *client.SessionCache, args []string) error {
	fs, in := reservationFlags("reservation-edit")
	if err := fs.Parse(args); err != nil {
		return err
	}
	id, err := parseID(fs)
	if err != nil {
		return err
	}
	if err := c.UpdateReservation(ctx, id, *in); err != nil {
		return err
	}
	fmt.Println("Reservation updated successfully.")
	return nil
}

func runReservationDelete(ctx context.Context, c *client.Client, _ *client.SessionCache, args []string) error {
	fs := flag.NewFlagSet("reservation-del", flag.ContinueOnError)
	if err := fs.Parse(args); err != nil {
		return err
	}
	id, err := parseID(fs)
	if err != nil {
		return err
	}
	if err := c.DeleteReservation(ctx, id); err != nil {
		return err
	}
	fmt.Println("Reservation deleted successfully.")
	return nil
}

func runCancel(ctx context.Context, c *client.Client, _ *client.SessionCache, args []string) error {
	fs := flag.NewFlagSet("cancel", flag.ContinueOnError)
	if err := fs.Parse(args); err != nil {
		return err
	}
	id, err := parseID(fs)
	if err != nil {
		return err
	}
	if err := c.CancelMyReservation(ctx, id); err != nil {
		return err
	}
	fmt.Println("Reservation cancelled.")
	return nil
}

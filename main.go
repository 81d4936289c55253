package main

import (
	"bufio"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"

	"beyt_client/api"
	"beyt_client/auth"
	"beyt_client/config"
	"beyt_client/i18n"
	"beyt_client/listings"
	"beyt_client/logging"
	"beyt_client/services"
	"beyt_client/storage"
	"beyt_client/tui"
)

var (
	loginEmail  = flag.String("login", "", "Log in with this email and exit")
	googleLogin = flag.Bool("google-login", false, "Log in through Google in the browser and exit")
	logout      = flag.Bool("logout", false, "Clear the stored session and exit")
	search      = flag.String("search", "", "Run a saved search preset once, print JSON, and exit")
	whoami      = flag.Bool("whoami", false, "Print the logged-in user and exit")
)

func oneShot() bool {
	return *loginEmail != "" || *googleLogin || *logout || *search != "" || *whoami
}

func main() {
	flag.Parse()
	log.SetFlags(log.LstdFlags | log.Lshortfile)

	logFile, err := logging.Setup("beyt.log")
	if err != nil {
		log.Printf("Warning: could not set up file logging: %v", err)
	} else {
		defer logFile.Close()
		if oneShot() {
			// No TUI on the terminal, so logs can go to stderr too.
			logFile.Tee(os.Stderr)
		}
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	log.Printf("API base: %s, %d search presets", cfg.API.BaseURL, len(cfg.Searches))

	store, err := storage.NewSQLiteStore(cfg.DBPath)
	if err != nil {
		log.Fatalf("Failed to open state store: %v", err)
	}
	defer store.Close()

	session, err := auth.NewSession(store)
	if err != nil {
		log.Fatalf("Failed to restore session: %v", err)
	}

	client := api.NewClient(cfg.API.BaseURL, cfg.API.Timeout, session)
	authSvc := auth.NewService(client, session)
	common := services.NewCommonDataService(client)
	fetcher := listings.NewFetcher(listings.NewAPISource(client))

	msgs, err := i18n.Load(cfg.Language)
	if err != nil {
		log.Fatalf("Failed to load locale: %v", err)
	}

	ctx := context.Background()

	switch {
	case *logout:
		if err := session.Logout(); err != nil {
			log.Fatalf("Logout failed: %v", err)
		}
		fmt.Println("Logged out.")
		return

	case *loginEmail != "":
		runLogin(ctx, authSvc, *loginEmail)
		return

	case *googleLogin:
		runGoogleLogin(ctx, cfg, client, session)
		return

	case *whoami:
		user, err := authSvc.CurrentUser(ctx)
		if err != nil {
			log.Fatalf("Not logged in: %v", err)
		}
		fmt.Printf("%s <%s>\n", user.Name, user.Email)
		return

	case *search != "":
		runSearch(ctx, cfg, store, fetcher, *search)
		return
	}

	if err := tui.Run(fetcher, authSvc, session, common, msgs); err != nil {
		log.Fatalf("TUI exited: %v", err)
	}
}

func runLogin(ctx context.Context, authSvc *auth.Service, email string) {
	fmt.Print("Password: ")
	password, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil {
		log.Fatalf("Failed to read password: %v", err)
	}

	user, err := authSvc.LoginWithEmail(ctx, email, strings.TrimSpace(password))
	if err != nil {
		log.Fatalf("Login failed: %v", err)
	}
	fmt.Printf("Logged in as %s.\n", user.Name)
}

// runGoogleLogin walks the browser flow: print the consent URL, catch the
// redirect on the loopback listener, exchange the code for a session.
func runGoogleLogin(ctx context.Context, cfg *config.Config, client *api.Client, session *auth.Session) {
	if cfg.Google.ClientID == "" {
		log.Fatalf("GOOGLE_CLIENT_ID is not set")
	}

	google := auth.NewGoogleAuth(cfg.Google.ClientID, cfg.Google.ClientSecret,
		cfg.Google.RedirectURL, client, session)

	redirect, err := url.Parse(cfg.Google.RedirectURL)
	if err != nil {
		log.Fatalf("Bad GOOGLE_REDIRECT_URL %q: %v", cfg.Google.RedirectURL, err)
	}

	state := uuid.NewString()
	codes := make(chan string, 1)

	mux := http.NewServeMux()
	mux.HandleFunc(redirect.Path, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("state") != state {
			http.Error(w, "state mismatch", http.StatusBadRequest)
			return
		}
		fmt.Fprintln(w, "Login received, you can close this window.")
		codes <- r.URL.Query().Get("code")
	})
	srv := &http.Server{Addr: redirect.Host, Handler: mux}
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Could not listen on %s: %v", redirect.Host, err)
		}
	}()

	fmt.Println("Open this URL in your browser:")
	fmt.Println(google.AuthURL(state))

	var code string
	select {
	case code = <-codes:
	case <-time.After(5 * time.Minute):
		log.Fatalf("Timed out waiting for the Google redirect")
	}
	srv.Shutdown(ctx)

	user, err := google.Login(ctx, code)
	if err != nil {
		log.Fatalf("Google login failed: %v", err)
	}
	fmt.Printf("Logged in as %s.\n", user.Name)
}

// runSearch fetches every page of a preset and dumps the feed as JSON.
func runSearch(ctx context.Context, cfg *config.Config, store *storage.SQLiteStore,
	fetcher *listings.Fetcher, presetID string) {

	preset, ok := cfg.Searches[presetID]
	if !ok {
		log.Fatalf("Unknown search preset %q (have: %s)", presetID, presetNames(cfg))
	}

	filters := listings.Filters{
		Location:  preset.Location,
		Types:     preset.Types,
		Status:    preset.Status,
		Beds:      preset.Beds,
		Baths:     preset.Baths,
		SortBy:    preset.SortBy,
		PriceFrom: preset.PriceFrom,
		PriceTo:   preset.PriceTo,
	}

	fetcher.SetFilters(filters)

	ctx, cancel := context.WithTimeout(ctx, 2*time.Minute)
	defer cancel()

	if err := fetcher.FetchFirst(ctx); err != nil {
		log.Fatalf("Search failed: %v", err)
	}
	for fetcher.Snapshot().HasMore {
		if err := fetcher.FetchMore(ctx); err != nil {
			log.Fatalf("Search failed at page %d: %v", fetcher.Snapshot().LastPage+1, err)
		}
	}

	snap := fetcher.Snapshot()
	if err := store.RecordSearch(snap.Key, 20); err != nil {
		log.Printf("Warning: could not record search: %v", err)
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(snap.Items); err != nil {
		log.Fatalf("Encode failed: %v", err)
	}
	log.Printf("Search %q: %d listings over %d pages", presetID, len(snap.Items), snap.LastPage)
}

func presetNames(cfg *config.Config) string {
	names := make([]string, 0, len(cfg.Searches))
	for id := range cfg.Searches {
		names = append(names, id)
	}
	return strings.Join(names, ", ")
}

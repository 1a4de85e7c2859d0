package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"okrcoach/internal/antipattern"
	"okrcoach/internal/audit"
	"okrcoach/internal/coach"
	"okrcoach/internal/config"
	"okrcoach/internal/controller"
	"okrcoach/internal/export"
	"okrcoach/internal/phase"
	"okrcoach/internal/scoring"
	"okrcoach/internal/server"
	"okrcoach/internal/session"
)

const appName = "okrcoach"

func main() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "%s: OKR coaching decision engine\n\n", appName)
		fmt.Fprintf(os.Stderr, "Usage:\n  %s [command] [flags]\n\n", appName)
		fmt.Fprintln(os.Stderr, "Commands:")
		fmt.Fprintln(os.Stderr, "  serve     Run the HTTP API")
		fmt.Fprintln(os.Stderr, "  score     Score an objective or key result")
		fmt.Fprintln(os.Stderr, "  detect    Detect anti-patterns in goal text")
		fmt.Fprintln(os.Stderr, "  validate  Check a phase transition")
		fmt.Fprintln(os.Stderr, "  export    Write a session's OKRs as a YAML document")
		fmt.Fprintln(os.Stderr, "  help      Show this help")
	}

	args := os.Args[1:]
	if len(args) == 0 || args[0] == "help" || args[0] == "-h" || args[0] == "--help" {
		flag.Usage()
		return
	}

	var err error
	switch args[0] {
	case "serve":
		err = runServe(args[1:])
	case "score":
		err = runScore(args[1:])
	case "detect":
		err = runDetect(args[1:])
	case "validate":
		err = runValidate(args[1:])
	case "export":
		err = runExport(args[1:])
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", args[0])
		flag.Usage()
		os.Exit(1)
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func runServe(args []string) error {
	fs := flag.NewFlagSet("serve", flag.ContinueOnError)
	configPath := fs.String("config", "okrcoach.yml", "Path to config file")
	listen := fs.String("listen", "", "Listen address (overrides config)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		return err
	}
	if *listen != "" {
		cfg.Listen = *listen
	}

	store, err := session.Open(cfg.SessionDB)
	if err != nil {
		return err
	}
	defer store.Close()

	cache, err := scoring.NewLRUCache(cfg.Cache.Size, time.Duration(cfg.Cache.TTL))
	if err != nil {
		return err
	}
	scorer := scoring.New(cache)
	ctrl := &controller.Controller{ForceAfterTurns: cfg.ForceAfterTurns}
	auditLogger := audit.NewLogger(cfg.AuditDB)

	var adapter coach.Adapter
	switch cfg.Adapter {
	case "openai":
		adapter = coach.NewOpenAI(cfg.OpenAI.APIKey, cfg.OpenAI.Model, cfg.OpenAI.BaseURL)
	default:
		adapter = &coach.MockAdapter{}
	}

	manager := session.NewManager(store, scorer, ctrl, adapter, auditLogger)
	srv := server.New(manager, scorer)

	httpServer := &http.Server{
		Addr:         cfg.Listen,
		Handler:      srv.Handler(),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 0, // websocket streams stay open
	}

	fmt.Printf("%s listening on %s (adapter: %s)\n", appName, cfg.Listen, adapter.Name())
	return httpServer.ListenAndServe()
}

func runScore(args []string) error {
	fs := flag.NewFlagSet("score", flag.ContinueOnError)
	objective := fs.String("objective", "", "Objective text to score")
	keyResult := fs.String("kr", "", "Key result text to score")
	industry := fs.String("industry", "", "Company industry for context")
	function := fs.String("function", "", "Team function for context")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if *objective == "" && *keyResult == "" {
		return fmt.Errorf("score requires -objective or -kr")
	}

	ctx := scoring.Context{Industry: *industry, Function: *function}
	scorer := scoring.New(nil)

	if *objective != "" {
		scope := controller.DetectObjectiveScope(*objective, ctx)
		return printJSON(scorer.ScoreObjective(*objective, ctx, scope))
	}
	return printJSON(scorer.ScoreKeyResult(*keyResult, ctx))
}

func runDetect(args []string) error {
	fs := flag.NewFlagSet("detect", flag.ContinueOnError)
	text := fs.String("text", "", "Goal text to analyze")
	experienced := fs.Bool("experienced", false, "User has prior OKR experience")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *text == "" {
		return fmt.Errorf("detect requires -text")
	}

	result := antipattern.Detect(*text)
	out := struct {
		Patterns []antipattern.Finding `json:"patterns"`
		Reframe  *antipattern.Reframe  `json:"reframe,omitempty"`
	}{
		Patterns: result.Patterns,
		Reframe:  antipattern.BuildReframe(result, *text, antipattern.UserProfile{Experienced: *experienced}),
	}
	return printJSON(out)
}

func runValidate(args []string) error {
	fs := flag.NewFlagSet("validate", flag.ContinueOnError)
	from := fs.String("from", "", "Current phase")
	to := fs.String("to", "", "Target phase")
	objective := fs.String("objective", "", "Current objective text")
	keyResults := fs.String("krs", "", "Comma-separated key result texts")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *from == "" || *to == "" {
		return fmt.Errorf("validate requires -from and -to")
	}

	fromPhase, err := phase.Parse(*from)
	if err != nil {
		return err
	}
	toPhase, err := phase.Parse(*to)
	if err != nil {
		return err
	}

	var krs []string
	if *keyResults != "" {
		for _, kr := range strings.Split(*keyResults, ",") {
			if t := strings.TrimSpace(kr); t != "" {
				krs = append(krs, t)
			}
		}
	}

	ctx := scoring.Context{}
	scorer := scoring.New(nil)
	scores := phase.Scores{}
	if strings.TrimSpace(*objective) != "" {
		scope := controller.DetectObjectiveScope(*objective, ctx)
		objScore := scorer.ScoreObjective(*objective, ctx, scope)
		scores.Objective = &objScore
	}
	for _, kr := range krs {
		scores.KeyResults = append(scores.KeyResults, scorer.ScoreKeyResult(kr, ctx))
	}
	if scores.Objective != nil {
		overall := scoring.Combine(*scores.Objective, *objective, scores.KeyResults, krs)
		scores.Overall = &overall
	}

	verdict := phase.ValidateTransition(fromPhase, toPhase, phase.Snapshot{
		Objective:  *objective,
		KeyResults: krs,
		TurnCount:  0,
	}, scores)
	return printJSON(verdict)
}

func runExport(args []string) error {
	fs := flag.NewFlagSet("export", flag.ContinueOnError)
	sessionID := fs.String("session", "", "Session ID to export")
	dbPath := fs.String("db", "", "Session database path (defaults to config)")
	outPath := fs.String("o", "", "Output file (defaults to stdout)")
	configPath := fs.String("config", "okrcoach.yml", "Path to config file")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *sessionID == "" {
		return fmt.Errorf("export requires -session")
	}

	db := *dbPath
	if db == "" {
		cfg, err := config.Load(*configPath)
		if err != nil {
			return err
		}
		db = cfg.SessionDB
	}

	store, err := session.Open(db)
	if err != nil {
		return err
	}
	defer store.Close()

	sess, err := store.Get(*sessionID)
	if err != nil {
		return err
	}

	doc, err := export.Build(sess, scoring.New(nil), time.Now())
	if err != nil {
		return err
	}
	out, err := export.Render(doc)
	if err != nil {
		return err
	}

	if *outPath != "" {
		return os.WriteFile(*outPath, out, 0o644)
	}
	_, err = os.Stdout.Write(out)
	return err
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/micro"
	"github.com/urfave/cli/v3"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	nexus "github.com/specs-nexus/nexus"
	"github.com/specs-nexus/nexus/analytics"
	"github.com/specs-nexus/nexus/announcements"
	"github.com/specs-nexus/nexus/auth"
	"github.com/specs-nexus/nexus/completion"
	"github.com/specs-nexus/nexus/embedding"
	"github.com/specs-nexus/nexus/events"
	"github.com/specs-nexus/nexus/knowledge"
	"github.com/specs-nexus/nexus/membership"
	"github.com/specs-nexus/nexus/officers"
	"github.com/specs-nexus/nexus/persistence/chromem"
	"github.com/specs-nexus/nexus/persistence/gobstore"
	"github.com/specs-nexus/nexus/persistence/sqlite"
	"github.com/specs-nexus/nexus/users"

	httpT "github.com/specs-nexus/nexus/transport/http"
	natsT "github.com/specs-nexus/nexus/transport/nats"
)

func main() {
	cmd := &cli.Command{
		Name:  "nexus",
		Usage: "SPECS Nexus service",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "path",
				Usage: "Path to the Nexus working directory",
			},
			&cli.StringFlag{
				Name:  "http-addr",
				Usage: "HTTP server address",
				Value: ":8000",
			},
			&cli.StringFlag{
				Name:    "nats",
				Usage:   "NATS server URL (empty disables the NATS transport)",
				Sources: cli.EnvVars("NATS_URL"),
			},
		},
		Action: run,
	}

	err := cmd.Run(context.Background(), os.Args)
	if err != nil {
		log.Fatal(err.Error())
	}
}

func run(ctx context.Context, cmd *cli.Command) error {
	godotenv.Load()

	path := cmd.String("path")
	if path == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return err
		}

		path = filepath.Join(homeDir, ".nexus")
	}

	log, err := zap.NewDevelopment()
	if err != nil {
		return err
	}
	defer log.Sync()

	zap.ReplaceGlobals(log)

	f, err := os.Open(filepath.Join(path, "config.yaml"))
	if err != nil {
		return err
	}
	defer f.Close()

	var cfg nexus.Config
	if err := yaml.NewDecoder(f).Decode(&cfg); err != nil {
		return err
	}

	tokenSecret := os.Getenv("NEXUS_TOKEN_SECRET")
	tokens, err := auth.New(tokenSecret, cfg.Auth.TokenTTL.Duration())
	if err != nil {
		return err
	}

	dbPath := cfg.Database.Path
	if dbPath == "" {
		dbPath = filepath.Join(path, "nexus.db")
	}

	db, err := sqlite.Open(dbPath)
	if err != nil {
		return err
	}
	defer db.Close()

	if err := sqlite.Migrate(db); err != nil {
		return err
	}

	store, err := newKnowledgeStore(ctx, path, cfg.Chat.Knowledge)
	if err != nil {
		return err
	}

	embedder, err := embedding.NewOpenAI(os.Getenv("OPENAI_API_KEY"), cfg.Chat.Embedding.Model)
	if err != nil {
		return err
	}

	cached, err := embedding.NewCached(embedder, cfg.Chat.Embedding.CacheCapacity)
	if err != nil {
		return err
	}

	completions, err := completion.NewClient(
		cfg.Chat.Completion.ClientConfig(),
		os.Getenv("TOGETHER_API_KEY"),
	)
	if err != nil {
		return err
	}

	chatSvc := nexus.NewService(store, cached, completions)
	defer chatSvc.Close()

	chatSvc = nexus.LoggingMiddleware(log)(chatSvc)

	userRepo := sqlite.NewUserRepository(db)
	eventRepo := sqlite.NewEventRepository(db)
	membershipRepo := sqlite.NewMembershipRepository(db)
	announcementRepo := sqlite.NewAnnouncementRepository(db)
	officerRepo := sqlite.NewOfficerRepository(db)
	analyticsRepo := sqlite.NewAnalyticsRepository(db)

	userSvc := users.NewService(userRepo, tokens)
	eventSvc := events.NewService(eventRepo)
	membershipSvc := membership.NewService(membershipRepo)
	announcementSvc := announcements.NewService(announcementRepo)
	officerSvc := officers.NewService(officerRepo, tokens)
	analyticsSvc := analytics.NewService(analyticsRepo)

	endpoints := httpT.Endpoints{
		Chat: nexus.EndpointSet{
			Answer: nexus.AnswerEndpoint(chatSvc),
		},
		Users: users.EndpointSet{
			Login:   users.LoginEndpoint(userSvc),
			Profile: users.ProfileEndpoint(userSvc),
		},
		Events: events.EndpointSet{
			List:         events.ListEndpoint(eventSvc),
			Join:         events.JoinEndpoint(eventSvc),
			Leave:        events.LeaveEndpoint(eventSvc),
			Participants: events.ParticipantsEndpoint(eventSvc),
			Create:       events.CreateEndpoint(eventSvc),
			Update:       events.UpdateEndpoint(eventSvc),
			Archive:      events.ArchiveEndpoint(eventSvc),
		},
		Membership: membership.EndpointSet{
			Memberships:        membership.MembershipsEndpoint(membershipSvc),
			UpdateReceipt:      membership.UpdateReceiptEndpoint(membershipSvc),
			QRCodeURL:          membership.QRCodeURLEndpoint(membershipSvc),
			ListAll:            membership.ListAllEndpoint(membershipSvc),
			Create:             membership.CreateEndpoint(membershipSvc),
			Verify:             membership.VerifyEndpoint(membershipSvc),
			Requirements:       membership.RequirementsEndpoint(membershipSvc),
			UpdateRequirement:  membership.UpdateRequirementEndpoint(membershipSvc),
			ArchiveRequirement: membership.ArchiveRequirementEndpoint(membershipSvc),
			CreateRequirement:  membership.CreateRequirementEndpoint(membershipSvc),
			SetQRCode:          membership.SetQRCodeEndpoint(membershipSvc),
		},
		Announcements: announcements.EndpointSet{
			List:    announcements.ListEndpoint(announcementSvc),
			Create:  announcements.CreateEndpoint(announcementSvc),
			Update:  announcements.UpdateEndpoint(announcementSvc),
			Archive: announcements.ArchiveEndpoint(announcementSvc),
		},
		Officers: officers.EndpointSet{
			Login:   officers.LoginEndpoint(officerSvc),
			List:    officers.ListEndpoint(officerSvc),
			Create:  officers.CreateEndpoint(officerSvc),
			Update:  officers.UpdateEndpoint(officerSvc),
			Archive: officers.ArchiveEndpoint(officerSvc),
			Import:  officers.ImportEndpoint(officerSvc),
		},
		Analytics: analytics.EndpointSet{
			Dashboard: analytics.DashboardEndpoint(analyticsSvc),
		},
	}

	natsURL := cmd.String("nats")
	if natsURL != "" {
		nc, err := nats.Connect(natsURL,
			nats.Name("SPECS Nexus"),
		)
		if err != nil {
			return err
		}
		defer nc.Drain()

		srv, err := micro.AddService(nc, micro.Config{
			Name:    "nexus",
			Version: "1.0.0",
		})
		if err != nil {
			return err
		}
		defer srv.Stop()

		root := srv.AddGroup("nexus.chat")
		natsT.AddEndpoints(root, endpoints.Chat)
	}

	staticDir := cfg.Static.Dir
	if staticDir == "" {
		staticDir = filepath.Join(path, "static")
	}

	uploads := httpT.NewUploads(staticDir, cfg.Static.BaseURL)

	r := gin.Default()
	r.Use(cors.Default())
	httpT.AddRouters(r, endpoints, tokens, uploads)

	go r.Run(cmd.String("http-addr"))

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	sign := <-quit

	log.Info("graceful shutdown", zap.String("signal", sign.String()))
	return nil
}

func newKnowledgeStore(ctx context.Context, path string, cfg knowledge.Config) (knowledge.Store, error) {
	if cfg.IndexPath == "" {
		cfg.IndexPath = filepath.Join(path, "knowledge", "faq_index.gob")
	}
	if cfg.PassagesPath == "" {
		cfg.PassagesPath = filepath.Join(path, "knowledge", "faq_passages.gob")
	}

	artifacts, err := gobstore.Load(cfg.IndexPath, cfg.PassagesPath)
	if err != nil {
		return nil, err
	}

	switch cfg.Backend {
	case "", "memory":
		return knowledge.NewMemoryStore(artifacts.Index.Vectors, artifacts.Passages, artifacts.Index.Dimension)

	case "chromem":
		if cfg.Path == "" {
			cfg.Path = filepath.Join(path, "vectors")
		}

		return chromem.NewKnowledgeStore(ctx, cfg, artifacts)

	default:
		return nil, fmt.Errorf("unknown knowledge backend: %q", cfg.Backend)
	}
}

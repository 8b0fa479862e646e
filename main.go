// The veteyealk service assistant: a chat API that diagnoses Vet-Eye
// device problems against a local knowledge base and OpenAI, verifies
// devices in Airtable, and books service visits.
package main

import (
	"context"

	"github.com/go-redis/redis/v7"
	"github.com/sirupsen/logrus"

	"github.com/MarcinSar/veteyealk/ai"
	"github.com/MarcinSar/veteyealk/airtable"
	"github.com/MarcinSar/veteyealk/calendar"
	"github.com/MarcinSar/veteyealk/chatbot"
	"github.com/MarcinSar/veteyealk/config"
	"github.com/MarcinSar/veteyealk/dashboard"
	"github.com/MarcinSar/veteyealk/gateway"
	"github.com/MarcinSar/veteyealk/knowledge"
	"github.com/MarcinSar/veteyealk/notify"
	"github.com/MarcinSar/veteyealk/store"
)

var log = logrus.New()

func main() {
	cfg, err := config.FromEnv()
	if err != nil {
		log.Fatalf("configuration error: %v", err)
	}
	if cfg.Debug {
		log.SetLevel(logrus.DebugLevel)
	} else {
		log.SetFormatter(&logrus.JSONFormatter{})
	}

	redisClient := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
	if err := redisClient.Ping().Err(); err != nil {
		log.Warnf("redis not reachable at startup: %v", err)
	}

	db, err := store.Open(cfg.DatabasePath)
	if err != nil {
		log.Fatalf("opening database: %v", err)
	}

	scheduler, err := calendar.New(log)
	if err != nil {
		log.Fatalf("initializing calendar: %v", err)
	}

	svc := &chatbot.Service{
		Redis:     redisClient,
		Db:        db,
		Airtable:  airtable.NewClient(cfg.AirtableAPIKey, cfg.AirtableBaseID, log),
		AI:        ai.NewHelper(cfg.OpenAIAPIKey, "", log),
		Knowledge: knowledge.Load(cfg.DataDir, log),
		Calendar:  scheduler,
		Config:    cfg,
		Logger:    log,
	}

	if cfg.FirebaseCredentials != "" {
		push, err := notify.New(context.Background(), cfg.FirebaseCredentials, log)
		if err != nil {
			log.Warnf("firebase disabled: %v", err)
		} else {
			svc.Push = push
		}
	}

	auth := &gateway.JWTAuth{}
	auth.Init(cfg.JWTSecret)

	var admin gateway.Admin
	if cfg.AdminEmail != "" && cfg.AdminPassword != "" {
		admin, err = gateway.NewAdmin(cfg.AdminEmail, cfg.AdminPassword)
		if err != nil {
			log.Fatalf("hashing admin password: %v", err)
		}
	}

	dash := &dashboard.Service{Db: db, Logger: log}

	engine := GetMainEngine(svc, dash, auth, admin)
	log.Infof("listening on :%s", cfg.Port)
	if err := engine.Run(":" + cfg.Port); err != nil {
		log.Fatalf("server stopped: %v", err)
	}
}

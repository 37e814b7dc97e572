// main.go
//
// Content and media service for the Single Tea India website
// Copyright (c) 2026 Alex Grant <info@localnerve.com> (https://www.localnerve.com), LocalNerve LLC
//
// This file is part of singletea-api.
// singletea-api is free software: you can redistribute it and/or modify it
// under the terms of the GNU Affero General Public License as published by the Free Software
// Foundation, either version 3 of the License, or (at your option) any later version.
// singletea-api is distributed in the hope that it will be useful, but WITHOUT ANY WARRANTY;
// without even the implied warranty of MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.
// See the GNU Affero General Public License for more details.
// You should have received a copy of the GNU Affero General Public License along with singletea-api.
// If not, see <https://www.gnu.org/licenses/>.
// Additional terms under GNU AGPL version 3 section 7:
// a) The reasonable legal notice of original copyright and author attribution must be preserved
//    by including the string: "Copyright (c) 2026 Alex Grant <info@localnerve.com> (https://www.localnerve.com), LocalNerve LLC"
//    in this material, copies, or source code of derived works.

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"

	"github.com/localnerve/singletea-api/internal/config"
	"github.com/localnerve/singletea-api/internal/database"
	"github.com/localnerve/singletea-api/internal/logger"
	"github.com/localnerve/singletea-api/internal/mail"
	"github.com/localnerve/singletea-api/internal/services"
	"github.com/localnerve/singletea-api/internal/storage"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	zapLog := logger.New(cfg.Log.Level, cfg.Log.Format)

	db, err := database.Connect(cfg, zapLog)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	checker := &services.HealthChecker{
		DB:     db,
		DBType: cfg.Database.Type,
		Media:  storage.NewOsMediaStore(cfg.Media.Root, cfg.ServerURL, cfg.Media.MaxFileBytes, zapLog),
		Log:    zapLog,
	}
	if cfg.RedisURL != "" {
		redis, err := services.NewRedisRevocations(cfg.RedisURL)
		if err != nil {
			log.Fatalf("Failed to configure redis: %v", err)
		}
		defer redis.Close()
		checker.Redis = redis
	}
	if cfg.Mail.Transport == "smtp" {
		checker.SMTPAddr = mail.NewSMTPMailer(mail.SMTPConfig{Host: cfg.Mail.SMTPHost, Port: cfg.Mail.SMTPPort}).Addr()
	}

	result := checker.Check(context.Background())

	output, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		log.Fatalf("Failed to marshal health check result: %v", err)
	}
	fmt.Println(string(output))

	// os.Exit skips deferred calls
	_ = database.Close(db)
	if !result.Healthy() {
		os.Exit(1)
	}
}

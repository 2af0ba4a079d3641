package services

import (
	"log"
	"net/http"
	"time"

	"boardSync/configs"
)

// KeepAliveService pings a configured URL on an interval so free-tier
// hosting does not idle the process out. Disabled unless configured.
type KeepAliveService struct {
	config *configs.Config
}

func NewKeepAliveService(config *configs.Config) *KeepAliveService {
	return &KeepAliveService{
		config: config,
	}
}

func (ks *KeepAliveService) Start() {
	if !ks.config.Viper.GetBool("keep_alive.enabled") {
		return
	}
	url := ks.config.Viper.GetString("keep_alive.url")
	if url == "" {
		log.Println("Keep alive enabled but no url configured")
		return
	}
	interval := time.Duration(ks.config.Viper.GetInt("keep_alive.interval_minutes")) * time.Minute

	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for range ticker.C {
			resp, err := http.Get(url)
			if err != nil {
				log.Printf("Keep alive ping failed: %v", err)
				continue
			}
			resp.Body.Close()
		}
	}()
}

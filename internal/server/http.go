package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rizki31/whatsapp-voucher-bot/internal/store"
)

// New builds the liveness HTTP server. The root route is a static
// confirmation; /stats exposes read-only record counts.
func New(port int, s *store.Store) *http.Server {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery())

	r.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, "WhatsApp Voucher Bot aktif!")
	})

	r.GET("/stats", func(c *gin.Context) {
		var users, vouchers, redeemed int
		err := s.View(func(snap *store.Snapshot) error {
			users = len(snap.Users)
			vouchers = len(snap.Vouchers)
			for _, v := range snap.Vouchers {
				if v.Redeemed {
					redeemed++
				}
			}
			return nil
		})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "store unavailable"})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"users":             users,
			"vouchers":          vouchers,
			"vouchers_redeemed": redeemed,
		})
	})

	return &http.Server{
		Addr:              fmt.Sprintf(":%d", port),
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
	}
}

// Shutdown stops the server, waiting briefly for in-flight requests.
func Shutdown(srv *http.Server) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = srv.Shutdown(ctx)
}

package main

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/spf13/cobra"

	"github.com/EchoCog/echograph/core/engine"
)

// echoServer holds the one Engine a serve process wraps, guarding
// mutating calls with a mutex since gin handles requests concurrently
// while the graph itself is not safe for concurrent Think/TeachText
// calls the way its lower-level locked accessors are.
type echoServer struct {
	mu     sync.Mutex
	engine *engine.Engine
	path   string
	wsUp   websocket.Upgrader
}

func newServeCmd() *cobra.Command {
	var addr string
	var saveInterval time.Duration

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the graph over HTTP: teach/think/stats endpoints and a websocket think stream",
		RunE: func(cmd *cobra.Command, args []string) error {
			eng, err := openEngine()
			if err != nil {
				return err
			}
			defer eng.Sink.Close()

			s := &echoServer{
				engine: eng,
				path:   graphPath,
				wsUp: websocket.Upgrader{
					CheckOrigin: func(r *http.Request) bool { return true },
				},
			}

			if saveInterval > 0 {
				go s.periodicSave(saveInterval)
			}

			gin.SetMode(gin.ReleaseMode)
			router := gin.Default()

			corsCfg := cors.DefaultConfig()
			corsCfg.AllowAllOrigins = true
			corsCfg.AllowHeaders = []string{"*"}
			corsCfg.AllowMethods = []string{"GET", "POST", "OPTIONS"}
			router.Use(cors.New(corsCfg))

			router.POST("/teach", s.handleTeach)
			router.POST("/think", s.handleThink)
			router.GET("/stats", s.handleStats)
			router.GET("/think/stream", s.handleThinkStream)

			return router.Run(addr)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", ":8080", "address to listen on")
	cmd.Flags().DurationVar(&saveInterval, "save-interval", time.Minute, "how often to checkpoint --graph to disk, 0 disables")
	return cmd
}

func (s *echoServer) periodicSave(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for range ticker.C {
		s.mu.Lock()
		_ = s.engine.Save(s.path)
		s.mu.Unlock()
	}
}

type teachRequest struct {
	Text string `json:"text"`
}

func (s *echoServer) handleTeach(c *gin.Context) {
	var req teachRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	s.mu.Lock()
	handles := s.engine.TeachText(req.Text)
	s.mu.Unlock()

	c.JSON(http.StatusOK, gin.H{"tokens_taught": len(handles)})
}

type thinkRequest struct {
	Query string `json:"query"`
}

type thinkResponse struct {
	Words     []string `json:"words"`
	Created   bool     `json:"leap_created"`
	Score     float32  `json:"score"`
	Abstained bool     `json:"abstained"`
}

func (s *echoServer) handleThink(c *gin.Context) {
	var req thinkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	s.mu.Lock()
	result, ok := s.engine.Think(req.Query)
	s.mu.Unlock()

	c.JSON(http.StatusOK, thinkResponse{
		Words:     result.Words,
		Created:   result.Decision.Created,
		Score:     result.Score.Score,
		Abstained: !ok,
	})
}

func (s *echoServer) handleStats(c *gin.Context) {
	s.mu.Lock()
	stats := s.engine.Stats()
	s.mu.Unlock()
	c.JSON(http.StatusOK, stats)
}

// handleThinkStream upgrades to a websocket and answers each incoming
// {"query": "..."} message with one complete think() result once it
// finishes, letting a caller hold one connection for a conversation
// rather than calling POST /think per query. Hops are not streamed.
func (s *echoServer) handleThinkStream(c *gin.Context) {
	conn, err := s.wsUp.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		return
	}
	defer conn.Close()

	for {
		var req thinkRequest
		if err := conn.ReadJSON(&req); err != nil {
			return
		}

		s.mu.Lock()
		result, ok := s.engine.Think(req.Query)
		s.mu.Unlock()

		resp := thinkResponse{
			Words:     result.Words,
			Created:   result.Decision.Created,
			Score:     result.Score.Score,
			Abstained: !ok,
		}
		if err := conn.WriteJSON(resp); err != nil {
			return
		}
	}
}

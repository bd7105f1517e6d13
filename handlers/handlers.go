package handlers

// handlers serve the shared playlist over HTTP: the page itself, the catalog,
// the quiz and the visit counter.

import (
	"bytes"
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"

	"github.com/kaulkaran/huti/catalog"
	"github.com/kaulkaran/huti/pages"
	"github.com/kaulkaran/huti/quiz"
	"github.com/kaulkaran/huti/sentry"
	"github.com/kaulkaran/huti/sentryhelper"
	"github.com/kaulkaran/huti/visits"
)

type AnswersRequest struct {
	Answers []string `json:"answers" binding:"required"`
}

type AnswersResponse struct {
	Matched bool         `json:"matched"`
	Result  *quiz.Result `json:"result,omitempty"`
	Message string       `json:"message"`
}

type Manager struct {
	Catalog *catalog.Catalog
	Quiz    quiz.Config
	Storage visits.Storage

	// one page load is one increment; loads are counted one at a time
	visitsMu sync.Mutex
	logger   *log.Entry
}

func NewManager(songs *catalog.Catalog, config quiz.Config, storage visits.Storage) *Manager {
	return &Manager{
		Catalog: songs,
		Quiz:    config,
		Storage: storage,
		logger: log.WithFields(log.Fields{
			"module": "handlers",
		}),
	}
}

// NewRouter wires every route of the share server.
func NewRouter(manager *Manager) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), sentry.GetSentryGin())

	router.GET("/", manager.HandlePlaylist)
	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"ok": true,
		})
	})

	api := router.Group("/api")
	api.GET("/songs", manager.HandleSongs)
	api.GET("/visits", manager.HandleVisits)
	api.GET("/quiz", manager.HandleQuiz)
	api.POST("/quiz/answers", manager.HandleAnswers)
	return router
}

func (manager *Manager) HandlePlaylist(c *gin.Context) {
	manager.visitsMu.Lock()
	count, err := visits.NewCounter(manager.Storage).Load()
	manager.visitsMu.Unlock()
	if err != nil {
		sentryhelper.CaptureException(c.Request.Context(), err)
	}

	var page bytes.Buffer
	if err := pages.Playlist.Execute(&page, pages.PlaylistData{
		Songs:  manager.Catalog.Songs(),
		Visits: count,
	}); err != nil {
		manager.logger.Errorf("failed to render playlist: %v", err)
		sentryhelper.CaptureException(c.Request.Context(), err)
		c.String(http.StatusInternalServerError, "Failed to render playlist")
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", page.Bytes())
}

func (manager *Manager) HandleSongs(c *gin.Context) {
	c.JSON(http.StatusOK, manager.Catalog.Songs())
}

func (manager *Manager) HandleVisits(c *gin.Context) {
	manager.visitsMu.Lock()
	raw, ok, err := manager.Storage.Get(visits.StorageKey)
	manager.visitsMu.Unlock()
	if err != nil {
		manager.logger.Errorf("failed to read visit count: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to read visit count"})
		return
	}

	count := 0
	if ok {
		count = visits.Parse(raw)
	}
	c.JSON(http.StatusOK, gin.H{"visits": count})
}

func (manager *Manager) HandleQuiz(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"questions": manager.Quiz.Questions})
}

func (manager *Manager) HandleAnswers(c *gin.Context) {
	var request AnswersRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to parse answers"})
		return
	}

	outcome, err := quiz.ResolveAnswers(manager.Quiz, request.Answers)
	if err != nil {
		manager.logger.Debugf("rejected answers %q: %v", request.Answers, err)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, AnswersResponse{
		Matched: outcome.Matched(),
		Result:  outcome.Result,
		Message: outcome.Message(),
	})
}

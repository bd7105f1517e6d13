package controller

import (
	"errors"
	"sync"

	log "github.com/sirupsen/logrus"

	"github.com/kaulkaran/huti/audio"
	"github.com/kaulkaran/huti/catalog"
)

// Controller is the deck of mounted cards on the playlist grid.
type Controller struct {
	// This is a map of song ID to the player for that card
	sessions      map[int]*audio.Player
	order         []int
	factory       audio.ElementFactory
	notifications chan audio.PlaybackNotification
	logger        *log.Entry
	mutex         sync.Mutex
}

func NewController(factory audio.ElementFactory) *Controller {
	return &Controller{
		sessions:      make(map[int]*audio.Player),
		factory:       factory,
		notifications: make(chan audio.PlaybackNotification, 100),
		logger: log.WithFields(log.Fields{
			"module": "controller",
		}),
	}
}

// Notifications carries playback events from every mounted card.
func (c *Controller) Notifications() <-chan audio.PlaybackNotification {
	return c.notifications
}

// Mount creates a player for every song that is not mounted yet.
func (c *Controller) Mount(songs []catalog.Song) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	for _, song := range songs {
		if _, ok := c.sessions[song.ID]; ok {
			continue
		}
		c.sessions[song.ID] = audio.NewPlayer(song.ID, song.AudioURL, c.factory, c.notifications)
		c.order = append(c.order, song.ID)
	}
	c.logger.Debugf("mounted %d cards", len(c.sessions))
}

// GetPlayer returns the mounted player for a song.
func (c *Controller) GetPlayer(songID int) (*audio.Player, bool) {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	player, ok := c.sessions[songID]
	return player, ok
}

func (c *Controller) Mounted() int {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	return len(c.sessions)
}

// Playing returns the IDs of every card currently playing, in mount order.
func (c *Controller) Playing() []int {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	var ids []int
	for _, id := range c.order {
		if c.sessions[id].IsPlaying() {
			ids = append(ids, id)
		}
	}
	return ids
}

// Unmount closes every player and forgets it.
func (c *Controller) Unmount() error {
	c.mutex.Lock()
	sessions := c.sessions
	c.sessions = make(map[int]*audio.Player)
	c.order = nil
	c.mutex.Unlock()

	var errs []error
	for id, player := range sessions {
		if err := player.Close(); err != nil {
			c.logger.Warnf("failed to close player for song %d: %v", id, err)
			errs = append(errs, err)
		}
	}
	c.logger.Debugf("unmounted %d cards", len(sessions))
	return errors.Join(errs...)
}

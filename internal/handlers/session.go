package handlers

import (
	"strings"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/samber/lo"

	"lazverb/internal/config"
	"lazverb/internal/grammar"
)

// GetRegionsFromSession returns the default region filter stored in the session.
// Returns (nil, false) when nothing is stored or the stored value no longer parses.
func GetRegionsFromSession(c *gin.Context) ([]grammar.Region, bool) {
	if _, ok := c.Get(sessions.DefaultKey); !ok {
		return nil, false
	}
	stored, ok := sessions.Default(c).Get(config.SessionRegionKey).(string)
	if !ok || stored == "" {
		return nil, false
	}
	regions, err := grammar.ParseRegionList(strings.Split(stored, ","))
	if err != nil {
		return nil, false
	}
	return regions, true
}

// SaveRegionsToSession stores regions as the default filter; an empty list clears it
func SaveRegionsToSession(c *gin.Context, regions []grammar.Region) error {
	session := sessions.Default(c)
	if len(regions) == 0 {
		session.Delete(config.SessionRegionKey)
	} else {
		session.Set(config.SessionRegionKey, strings.Join(lo.Map(regions, func(r grammar.Region, _ int) string {
			return string(r)
		}), ","))
	}
	return session.Save()
}

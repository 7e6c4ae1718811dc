package jokesapi

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/iver-wharf/wharf-core/v2/pkg/ginutil"
	"github.com/iver-wharf/wharf-core/v2/pkg/problem"
	"github.com/iver-wharf/wharf-jokes/pkg/aggregator"
)

type jokesModule struct {
	agg          JokeAggregator
	defaultCount int
}

func (m jokesModule) register(g *gin.RouterGroup) {
	g.GET("/jokes", m.getJokesHandler)
	g.GET("/jokes/:count", m.getJokesByCountHandler)
}

// getJokesHandler godoc
// @id getJokes
// @summary Get jokes
// @description Collects jokes from the configured sources, in priority order.
// @description Fewer jokes than asked for are returned when the sources
// @description could not provide enough.
// @description Added in v0.1.0.
// @tags jokes
// @produce json
// @param count query int false "Number of jokes to get. Defaults to the configured default count." minimum(1) example(5)
// @success 200 {object} []aggregator.Joke
// @failure 400 {object} problem.Response "Invalid count"
// @failure 503 {object} problem.Response "No source returned any jokes"
// @router /api/jokes [get]
func (m jokesModule) getJokesHandler(c *gin.Context) {
	count := m.defaultCount
	if countStr, ok := c.GetQuery("count"); ok {
		n, err := strconv.Atoi(countStr)
		if err != nil {
			ginutil.WriteInvalidParamError(c, err, "count",
				fmt.Sprintf("Invalid joke count %q, it must be a positive integer.", countStr))
			return
		}
		count = n
	}
	m.writeJokes(c, count)
}

// getJokesByCountHandler godoc
// @id getJokesByCount
// @summary Get a number of jokes
// @description Collects jokes from the configured sources, in priority order.
// @description Fewer jokes than asked for are returned when the sources
// @description could not provide enough.
// @description Added in v0.1.0.
// @tags jokes
// @produce json
// @param count path uint true "Number of jokes to get." minimum(1) example(5)
// @success 200 {object} []aggregator.Joke
// @failure 400 {object} problem.Response "Invalid count"
// @failure 503 {object} problem.Response "No source returned any jokes"
// @router /api/jokes/{count} [get]
func (m jokesModule) getJokesByCountHandler(c *gin.Context) {
	count, ok := ginutil.ParseParamUint(c, "count")
	if !ok {
		return
	}
	m.writeJokes(c, int(count))
}

func (m jokesModule) writeJokes(c *gin.Context, count int) {
	jokes, err := m.agg.GetJokes(c.Request.Context(), count)
	switch {
	case errors.Is(err, aggregator.ErrInvalidCount):
		ginutil.WriteInvalidParamError(c, err, "count",
			fmt.Sprintf("Invalid joke count %d, it must be a positive integer.", count))
	case errors.Is(err, aggregator.ErrNoJokes):
		log.Warn().
			WithString("requestId", requestID(c)).
			WithInt("count", count).
			Message("No joke source returned any jokes.")
		ginutil.WriteProblemError(c, err, problem.Response{
			Type:   "/prob/api/jokes/unavailable",
			Title:  "Jokes unavailable.",
			Status: http.StatusServiceUnavailable,
			Detail: aggregator.ErrNoJokes.Error(),
		})
	case err != nil:
		ginutil.WriteProblemError(c, err, problem.Response{
			Type:   "/prob/api/jokes/unexpected",
			Title:  "Unexpected error.",
			Status: http.StatusInternalServerError,
			Detail: "Failed to collect jokes.",
		})
	default:
		c.JSON(http.StatusOK, jokes)
	}
}

type sourcesModule struct {
	agg JokeAggregator
}

func (m sourcesModule) register(g *gin.RouterGroup) {
	g.GET("/sources", m.listSourcesHandler)
}

// listSourcesHandler godoc
// @id listSources
// @summary List joke sources
// @description Lists the configured joke sources in the order they are consulted.
// @description A source with a quota of zero is disabled.
// @description Added in v0.1.0.
// @tags sources
// @produce json
// @success 200 {object} []aggregator.SourceInfo
// @router /api/sources [get]
func (m sourcesModule) listSourcesHandler(c *gin.Context) {
	c.JSON(http.StatusOK, m.agg.Sources())
}

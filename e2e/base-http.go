package e2e

import (
	"context"
	"feed-lab/client"
	"fmt"

	"github.com/gookit/color"
	"github.com/stretchr/testify/suite"
)

type BaseHTTPSuite struct {
	suite.Suite
	Config Config
}

// SetupSuite loads the environment configuration and skips when no server is configured.
func (s *BaseHTTPSuite) SetupSuite() {
	var err error
	s.Config, err = LoadConfig()
	s.Require().NoError(err)
	if s.Config.ServerAddr == "" {
		s.T().Skip("FEED_SERVER_ADDR is not set")
	}
}

// WithFeed provides a feed client within a contextual test step.
func (s *BaseHTTPSuite) WithFeed(name string, fn func(ctx context.Context, feed *client.FeedClient)) {
	header := fmt.Sprintf("  ====== %s ======", name)
	if s.Config.Colours {
		header = color.New(color.BgBlack, color.FgGreen).Render(header)
	}
	s.T().Log(header)

	ctx, cancel := context.WithTimeout(context.Background(), s.Config.Timeout)
	defer cancel()
	fn(ctx, client.NewFeedClient(s.Config.ServerAddr, s.Config.Timeout))
}

// Debug logs a response body when E2E_DEBUG_JSON is enabled.
func (s *BaseHTTPSuite) Debug(label string, body []byte) {
	if s.Config.DebugJSON {
		s.T().Logf("%s:\n%s", label, body)
	}
}

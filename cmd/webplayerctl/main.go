package main

import (
	"context"
	"encoding/json"
	goflag "flag"
	"fmt"

	"github.com/cloudplay/webplayer/pkg/config"
	"github.com/cloudplay/webplayer/pkg/logger"
	"github.com/cloudplay/webplayer/pkg/monitoring"
	"github.com/cloudplay/webplayer/pkg/os"
	"github.com/cloudplay/webplayer/pkg/webplayer"
	flag "github.com/spf13/pflag"
)

var Version = "?"

func main() {
	var (
		confPath  string
		list      bool
		create    int
		refresh   string
		destroy   string
		attach    bool
	)
	flag.StringVar(&confPath, "conf", "", "set custom configuration file path")
	flag.BoolVar(&list, "list", false, "list the project sessions")
	flag.IntVar(&create, "create", 0, "create a session lasting the given number of seconds")
	flag.StringVar(&refresh, "refresh", "", "re-read the state of the session with the given id")
	flag.StringVar(&destroy, "destroy", "", "destroy the session with the given id")
	flag.BoolVar(&attach, "attach", false, "after create, stay attached to the session event stream")
	flag.CommandLine.AddGoFlagSet(goflag.CommandLine)
	flag.Parse()

	conf, err := config.NewWebplayerConfig(confPath)
	if err != nil {
		panic(err)
	}

	log := logger.NewConsole(conf.Webplayer.Debug, "wp", false)
	log.Info().Msgf("version %s", Version)
	if log.GetLevel() < logger.InfoLevel {
		log.Debug().Msgf("config: %+v", conf)
	}

	ctx := context.Background()

	if conf.Monitoring.IsEnabled() {
		m, err := monitoring.New(conf.Monitoring, "wp", log)
		if err != nil {
			log.Fatal().Err(err).Msg("couldn't init the monitoring server")
		}
		m.Run()
		defer func() {
			if err := m.Shutdown(ctx); err != nil {
				log.Error().Err(err).Msg("monitoring shutdown errors")
			}
		}()
	}

	options := []webplayer.RestOption{webplayer.WithRestLogger(log)}
	if conf.Webplayer.RateLimit > 0 {
		options = append(options, webplayer.WithRateLimit(conf.Webplayer.RateLimit))
	}
	rest, err := webplayer.NewRest(conf.Webplayer.Endpoint, conf.Webplayer.Key, options...)
	if err != nil {
		log.Fatal().Err(err).Msg("bad API endpoint")
	}
	client := webplayer.New(rest, conf.Webplayer.ProjectId, conf.Webplayer.InstanceId,
		conf.Webplayer.Features, log)

	switch {
	case list:
		sessions, err := webplayer.Sessions(ctx, rest)
		if err != nil {
			log.Fatal().Err(err).Msg("list failed")
		}
		printJSON(sessions)
	case create > 0:
		session, err := client.Create(ctx, create, func() { log.Info().Msg("session destroyed") })
		if err != nil {
			log.Fatal().Err(err).Msg("create failed")
		}
		printJSON(session)
		if attach {
			watch(ctx, client, log)
			if _, err := client.Destroy(ctx, ""); err != nil {
				log.Error().Err(err).Msg("destroy failed")
			}
		}
	case refresh != "":
		// adopt the id, then pull the server state
		client.Adopt(refresh)
		session, err := client.Refresh(ctx)
		if err != nil {
			log.Fatal().Err(err).Msg("refresh failed")
		}
		printJSON(session)
	case destroy != "":
		res, err := client.Destroy(ctx, destroy)
		if err != nil {
			log.Fatal().Err(err).Msg("destroy failed")
		}
		printJSON(res)
	default:
		flag.Usage()
	}
}

// watch prints session events until the process is told to stop.
func watch(ctx context.Context, client *webplayer.Client, log *logger.Logger) {
	stream, err := client.Attach(ctx)
	if err != nil {
		log.Error().Err(err).Msg("attach failed")
		return
	}
	defer func() { _ = stream.Close() }()

	events := make(chan webplayer.Event, 16)
	go func() {
		defer close(events)
		for {
			ev, err := stream.Recv()
			if err != nil {
				return
			}
			events <- ev
		}
	}()

	done := os.ExpectTermination()
	for {
		select {
		case ev, ok := <-events:
			if !ok {
				return
			}
			log.Info().Str("t", ev.T).RawJSON("p", orEmpty(ev.P)).Msg("event")
		case <-done:
			return
		}
	}
}

func orEmpty(p json.RawMessage) json.RawMessage {
	if len(p) == 0 {
		return json.RawMessage(`{}`)
	}
	return p
}

func printJSON(v any) {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		panic(err)
	}
	fmt.Println(string(out))
}

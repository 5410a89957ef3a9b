package config

type WebplayerConfig struct {
	Webplayer  Webplayer  `fig:"webplayer"`
	Monitoring Monitoring `fig:"monitoring"`
}

type Webplayer struct {
	// base project endpoint of the session API,
	// e.g. https://api.cloudplay.io/v1/projects/demo
	Endpoint string `fig:"endpoint"`
	// API key sent as a bearer token with every request
	Key        string `fig:"key"`
	ProjectId  string `fig:"projectid"`
	InstanceId string `fig:"instanceid"`
	// capability flags applied at session creation
	Features map[string]bool `fig:"features"`
	// requests per second cap, 0 disables the limiter
	RateLimit float64 `fig:"ratelimit"`
	Debug     bool    `fig:"debug"`
}

type Monitoring struct {
	Port             int    `fig:"port"`
	URLPrefix        string `fig:"urlprefix"`
	MetricEnabled    bool   `fig:"metric_enabled"`
	ProfilingEnabled bool   `fig:"profiling_enabled"`
}

func (c *Monitoring) IsEnabled() bool { return c.MetricEnabled || c.ProfilingEnabled }

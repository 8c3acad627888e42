package distlock

import "time"

type Config struct {
	LeaseTTL      time.Duration `env:"LOCK_LEASE_TTL" envDefault:"30s"`       // LeaseTTL is how long a held lock survives if the holder dies without releasing it.
	RetryInterval time.Duration `env:"LOCK_RETRY_INTERVAL" envDefault:"50ms"` // RetryInterval is the polling interval while waiting for a contended lock.
	WaitTimeout   time.Duration `env:"LOCK_WAIT_TIMEOUT" envDefault:"0"`      // WaitTimeout bounds acquisition; zero means wait indefinitely.
}

func defaultConfig() Config {
	return Config{
		LeaseTTL:      30 * time.Second,
		RetryInterval: 50 * time.Millisecond,
	}
}

func (c Config) withDefaults() Config {
	def := defaultConfig()
	if c.LeaseTTL <= 0 {
		c.LeaseTTL = def.LeaseTTL
	}
	if c.RetryInterval <= 0 {
		c.RetryInterval = def.RetryInterval
	}
	return c
}

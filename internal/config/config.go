package config

import (
	"fmt"
	"os"
	"strconv"

	schedule "github.com/platefleet/scheduling/internal/domain/schedule"
)

type Config struct {
	DBUrl      string
	SQLitePath string
	JWTSecret  string
	ServerPort string
	RedisAddr  string

	WeeklyCapHours    int
	MinRestHours      int
	DefaultShiftStart string
	DefaultShiftEnd   string
}

func Load() *Config {
	return &Config{
		DBUrl:      os.Getenv("DATABASE_URL"),
		SQLitePath: getEnv("SQLITE_PATH", "scheduling.db"),
		JWTSecret:  getEnv("JWT_SECRET", "changeme"),
		ServerPort: getEnv("SERVER_PORT", "8080"),
		RedisAddr:  os.Getenv("REDIS_ADDR"),

		WeeklyCapHours:    getEnvInt("WEEKLY_CAP_HOURS", 40),
		MinRestHours:      getEnvInt("MIN_REST_HOURS", 10),
		DefaultShiftStart: getEnv("DEFAULT_SHIFT_START", "09:00"),
		DefaultShiftEnd:   getEnv("DEFAULT_SHIFT_END", "17:00"),
	}
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return n
		}
	}
	return def
}

func (c *Config) Addr() string {
	return fmt.Sprintf(":%s", c.ServerPort)
}

// SchedulingRules builds the rule value object handed to the detector and
// auto-scheduler. Malformed window times fall back to the defaults.
func (c *Config) SchedulingRules() schedule.Rules {
	rules := schedule.DefaultRules()
	rules.WeeklyCapMinutes = c.WeeklyCapHours * 60
	rules.MinRestMinutes = c.MinRestHours * 60

	if start, err := schedule.ParseClock(c.DefaultShiftStart); err == nil {
		rules.DefaultShiftStartMin = start
	}
	if end, err := schedule.ParseClock(c.DefaultShiftEnd); err == nil {
		rules.DefaultShiftEndMin = end
	}
	return rules
}

// SPDX-License-Identifier: GPL-3.0-only

package commons

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"
)

var envOnce sync.Once

// LoadEnvFile reads KEY=VALUE pairs from the file named by --env-file, if any.
// Variables already present in the environment are overwritten.
func LoadEnvFile() {
	envOnce.Do(func() {
		args := os.Args[1:]
		for i, arg := range args {
			if arg == "--env-file" && i+1 < len(args) {
				if err := loadEnvFrom(args[i+1]); err != nil {
					fmt.Fprintf(os.Stderr, "Failed to load env file: %s\n", err)
				}
				return
			}
		}
	})
}

func loadEnvFrom(envFile string) error {
	file, err := os.Open(envFile)
	if err != nil {
		return err
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		key, val, ok := strings.Cut(line, "=")
		if !ok {
			continue
		}
		val = strings.Trim(strings.TrimSpace(val), `"'`)
		os.Setenv(strings.TrimSpace(key), val)
	}
	return scanner.Err()
}

// GetEnv returns the value of key, or the first default when it is unset or empty.
func GetEnv(key string, defaultValue ...string) string {
	LoadEnvFile()
	if v := os.Getenv(key); v != "" {
		return v
	}
	if len(defaultValue) > 0 {
		return defaultValue[0]
	}
	return ""
}

func GetEnvInt(key string, defaultValue int) int {
	v := GetEnv(key)
	if v == "" {
		return defaultValue
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		Logger.Warnf("Invalid integer for %s, using default %d", key, defaultValue)
		return defaultValue
	}
	return i
}

func GetEnvBool(key string, defaultValue bool) bool {
	v := GetEnv(key)
	if v == "" {
		return defaultValue
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		Logger.Warnf("Invalid boolean for %s, using default %t", key, defaultValue)
		return defaultValue
	}
	return b
}

func GetEnvDuration(key string, defaultValue time.Duration) time.Duration {
	v := GetEnv(key)
	if v == "" {
		return defaultValue
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		Logger.Warnf("Invalid duration for %s, using default %s", key, defaultValue)
		return defaultValue
	}
	return d
}

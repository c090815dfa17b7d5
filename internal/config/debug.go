package config

import "os"

func IsDebug() bool {
	return os.Getenv("ALICE_DEBUG") == "1"
}

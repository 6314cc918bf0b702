package config

import (
	"encoding/json"
	"io/ioutil"
	"os"

	"github.com/ethereum/go-ethereum/common"
	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"github.com/superchain-meme/launchpad/contracts"
)

type Config struct {
	Server    ServerConfig
	Chain     ChainConfig
	Verbosity int
	// Optional dotenv file read before the environment is consulted
	EnvFile string
}

type ServerConfig struct {
	Port int
}

type ChainConfig struct {
	RpcUrl           string
	LaunchpadAddress string
	Network          string
	// Name of the environment variable holding the deployer key
	PrivateKeyEnv string
	PrivateKey    string `json:"-"`
}

func LoadConfig(configPath string) *Config {
	if _, err := os.Stat(configPath); err != nil {
		panic(errors.Errorf("Config file can't be found, path: %v", configPath))
	}
	if jsonFile, err := os.Open(configPath); err != nil {
		panic(errors.Errorf("Config file can't be opened, path: %v", configPath))
	} else {
		defer jsonFile.Close()
		conf := newDefaultConfig()
		byteValue, _ := ioutil.ReadAll(jsonFile)
		err := json.Unmarshal(byteValue, conf)
		if err != nil {
			panic(errors.Errorf("Cannot parse JSON config, path: %v", configPath))
		}
		if !common.IsHexAddress(conf.Chain.LaunchpadAddress) {
			panic(errors.Errorf("Invalid launchpad address: %v", conf.Chain.LaunchpadAddress))
		}
		if err := loadEnv(conf); err != nil {
			panic(err)
		}
		return conf
	}
}

func loadEnv(conf *Config) error {
	if len(conf.EnvFile) > 0 {
		if err := godotenv.Load(conf.EnvFile); err != nil && !os.IsNotExist(err) {
			return errors.Wrapf(err, "Cannot load env file, path: %v", conf.EnvFile)
		}
	}
	conf.Chain.PrivateKey = os.Getenv(conf.Chain.PrivateKeyEnv)
	return nil
}

func newDefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Port: 80,
		},
		Chain: ChainConfig{
			RpcUrl:           "http://localhost:8545",
			LaunchpadAddress: contracts.LaunchpadAddress,
			Network:          "1",
			PrivateKeyEnv:    "LAUNCHPAD_PRIVATE_KEY",
		},
		Verbosity: 3,
		EnvFile:   ".env",
	}
}

package toml

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/rs/zerolog/log"
	"gopkg.in/amz.v3/aws"
	"gopkg.in/amz.v3/s3"

	"github.com/dirauth/dirauth/pkg/config"
)

const (
	defaultListen  = "0.0.0.0:5358"
	defaultTimeout = 10 // seconds
)

// NewConfig reads the cli flags and config file
func NewConfig(checkConfig bool, location string, args map[string]interface{}) (*config.Config, error) {
	// Parse config-file into config{} struct
	cfg, err := parseConfigFile(location, args)
	if err != nil {
		return nil, err
	}

	// Handle parsed flags
	cfg, err = handleArgs(cfg, args)
	if err != nil {
		return nil, err
	}

	cfg, err = validateConfig(cfg, checkConfig)
	if err != nil {
		return nil, err
	}

	return cfg, nil
}

func parseConfigFile(configFileLocation string, args map[string]interface{}) (*config.Config, error) {
	cfg := new(config.Config)
	// setup defaults
	cfg.API.Enabled = true

	// parse the config file
	if strings.HasPrefix(configFileLocation, "s3://") {
		region, present := aws.Regions[args["-r"].(string)]
		if args["--aws_endpoint_url"] != nil {
			region = aws.Region{
				Name:       "User defined",
				S3Endpoint: args["--aws_endpoint_url"].(string),
			}
			present = true
		}
		if !present {
			return cfg, fmt.Errorf("invalid AWS region: %s", args["-r"])
		}
		auth, err := aws.EnvAuth()
		if err != nil {
			if args["-K"] == nil || args["-S"] == nil {
				return cfg, fmt.Errorf("AWS credentials not found: must use -K and -S flags, or set these env vars:\n\texport AWS_ACCESS_KEY_ID=\"AAA...\"\n\texport AWS_SECRET_ACCESS_KEY=\"BBBB...\"\n")
			}
			auth = aws.Auth{
				AccessKey: args["-K"].(string),
				SecretKey: args["-S"].(string),
			}
		}
		// parse S3 url
		s3url := strings.TrimPrefix(configFileLocation, "s3://")
		parts := strings.SplitN(s3url, "/", 2)
		if len(parts) != 2 {
			return cfg, fmt.Errorf("invalid S3 URL: %s", s3url)
		}
		b, err := s3.New(auth, region).Bucket(parts[0])
		if err != nil {
			return cfg, err
		}
		tomlData, err := b.Get(parts[1])
		if err != nil {
			return cfg, err
		}
		if _, err := toml.Decode(string(tomlData), cfg); err != nil {
			return cfg, err
		}
	} else { // local config file
		fInfo, err := os.Stat(configFileLocation)
		if err != nil {
			return cfg, fmt.Errorf("non-existent config path: %s", configFileLocation)
		}

		if fInfo.IsDir() { // multiple files in a directory
			rawCfgStruct := make(map[string]interface{})

			files, _ := os.ReadDir(configFileLocation)
			for _, f := range files {
				canonicalName := filepath.Join(configFileLocation, f.Name())

				bs, _ := os.ReadFile(canonicalName)
				var curRawCfgStruct interface{}
				if err := toml.Unmarshal(bs, &curRawCfgStruct); err != nil {
					return cfg, err
				}
				if err = mergeConfigs(&rawCfgStruct, curRawCfgStruct); err != nil {
					return cfg, err
				}
			}

			destbuf := new(bytes.Buffer)
			err = toml.NewEncoder(destbuf).Encode(rawCfgStruct)
			if err != nil {
				return cfg, err
			}
			merged := config.Config{}
			merged.API.Enabled = true
			if _, err = toml.Decode(destbuf.String(), &merged); err != nil {
				return cfg, err
			}
			cfg = &merged
		} else {
			_, err = toml.DecodeFile(configFileLocation, cfg)
			if err != nil {
				return cfg, err
			}
		}
	}

	// Patch with default values where not specified
	if cfg.Directory.NameAttr == "" {
		cfg.Directory.NameAttr = "cn"
	}
	if cfg.Directory.MailAttr == "" {
		cfg.Directory.MailAttr = "mail"
	}
	if cfg.Directory.Timeout == 0 {
		cfg.Directory.Timeout = defaultTimeout
	}
	if cfg.API.Listen == "" {
		cfg.API.Listen = defaultListen
	}

	return cfg, nil
}

func mergeConfigs(config1 interface{}, config2 interface{}) error {
	var merger func(int, string, interface{}, interface{}) error
	merger = func(depth int, keyName string, cfg1 interface{}, cfg2 interface{}) error {
		switch element2 := cfg2.(type) {
		case map[string]interface{}:
			element2, ok := cfg2.(map[string]interface{})
			if !ok {
				return fmt.Errorf("config source: %s is not a map", keyName)
			}
			element1, ok := cfg1.(*map[string]interface{})
			if !ok {
				return fmt.Errorf("config dest: %s is not a map", keyName)
			}
			for k := range element2 {
				_, ok := (*element1)[k]
				if !ok {
					(*element1)[k] = element2[k]
				} else {
					asanarrayptr, ok := (*element1)[k].([]map[string]interface{})
					if ok {
						if err := merger(depth+1, k, &asanarrayptr, element2[k]); err != nil {
							return err
						}
						(*element1)[k] = asanarrayptr
					} else {
						asamapptr, ok := (*element1)[k].(map[string]interface{})
						if ok {
							if err := merger(depth+1, k, &asamapptr, element2[k]); err != nil {
								return err
							}
							(*element1)[k] = asamapptr
						} else {
							return fmt.Errorf("config dest: %s does not make a valid map/array ptr", keyName)
						}
					}
				}
			}
		case []map[string]interface{}:
			element2, ok := cfg2.([]map[string]interface{})
			if !ok {
				return fmt.Errorf("config source: %s is not a map array", keyName)
			}
			element1, ok := cfg1.(*[]map[string]interface{})
			if !ok {
				return fmt.Errorf("config dest: %s is not a map array", keyName)
			}
			for index := range element2 {
				*element1 = append(*element1, element2[index])
			}
		case string:
		case bool:
		case float64:
		case int64:
		case nil:
		default:
			log.Info().Str("type", reflect.TypeOf(element2).String()).Msg("Unknown element type found in configuration file. Ignoring.")
		}
		return nil
	}

	err := merger(0, "TOP", config1, config2)
	if err != nil {
		return err
	}
	return nil
}

func handleArgs(cfg *config.Config, args map[string]interface{}) (*config.Config, error) {
	// web API flags
	if listen, ok := args["--listen"].(string); ok && listen != "" {
		cfg.API.Enabled = true
		cfg.API.Listen = listen
	}

	// directory flags
	if host, ok := args["--directory"].(string); ok && host != "" {
		cfg.Directory.Host = host
	}

	return cfg, nil
}

func validateConfig(cfg *config.Config, checkConfig bool) (*config.Config, error) {
	if !cfg.API.Enabled {
		return cfg, fmt.Errorf("no server configuration found: please enable the [api] section")
	}

	if len(cfg.API.Listen) == 0 {
		return cfg, fmt.Errorf("no API bind address was specified: please use the 'listen' option")
	}

	if cfg.API.TLS {
		if len(cfg.API.Cert) == 0 || len(cfg.API.Key) == 0 {
			return cfg, fmt.Errorf("TLS was enabled but no certificate or key were specified: please disable TLS or use the 'cert' and 'key' options")
		}
	}

	// Directory field problems are logged, not fatal: the plugin keeps
	// running and reports a missing connection until fixed. A config
	// check run reports them as errors instead.
	if errs := config.Validate(&cfg.Directory); len(errs) > 0 {
		if checkConfig {
			return cfg, fmt.Errorf("directory configuration: %v", errs)
		}
		for _, err := range errs {
			log.Warn().Str("field", err.Field).Str("reason", err.Reason).Msg("directory configuration problem")
		}
	}

	return cfg, nil
}

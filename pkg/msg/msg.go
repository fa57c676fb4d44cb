package msg

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"reflect"
	"strconv"
	"strings"

	"github.com/spf13/viper"
)

//go:embed messages.yml
var defaultMessages []byte

var messages = make(map[string]string)

// init loads the embedded catalog, then overrides from MESSAGES_FILE_PATH if set
func init() {
	if err := load(func(v *viper.Viper) error { return v.ReadConfig(bytes.NewReader(defaultMessages)) }); err != nil {
		log.Fatalf("Fail to read embedded messages: %v", err)
	}

	if path, ok := os.LookupEnv("MESSAGES_FILE_PATH"); ok {
		Init(path)
	}
}

// Init merges the messages of the given YAML file over the current catalog
func Init(path string) {
	err := load(func(v *viper.Viper) error {
		v.SetConfigFile(path)
		return v.ReadInConfig()
	})
	if err != nil {
		log.Printf("Fail to read messages from %s: %v", path, err)
	}
}

func load(read func(v *viper.Viper) error) error {
	v := viper.New()
	v.SetConfigType("yml")
	if err := read(v); err != nil {
		return err
	}
	collect("", v.AllSettings())
	return nil
}

// collect flattens nested keys into the catalog, skipping anything that is not text
func collect(prefix string, data map[string]any) {
	for key, value := range data {
		if prefix != "" {
			key = prefix + "." + key
		}
		switch v := value.(type) {
		case string:
			messages[key] = v
		case map[string]any:
			collect(key, v)
		default:
			log.Printf("Ignoring message '%s' with unsupported type.", key)
		}
	}
}

// GetMessage returns the message for key with {0}, {1}... replaced by args.
// Unknown keys yield a "Message not found" text instead of failing.
func GetMessage(key string, args ...any) string {
	text, exists := messages[key]
	if !exists {
		return "Message not found: " + key
	}
	if len(args) == 0 {
		return text
	}

	pairs := make([]string, 0, len(args)*2)
	for i, arg := range args {
		pairs = append(pairs, "{"+strconv.Itoa(i)+"}", format(arg))
	}
	return strings.NewReplacer(pairs...).Replace(text)
}

// format renders scalars as text and everything else as JSON
func format(arg any) string {
	switch v := arg.(type) {
	case nil:
		return ""
	case string:
		return v
	case error:
		return v.Error()
	case fmt.Stringer:
		return v.String()
	case bool:
		return strconv.FormatBool(v)
	case int:
		return strconv.Itoa(v)
	case int64:
		return strconv.FormatInt(v, 10)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	}

	switch reflect.TypeOf(arg).Kind() {
	case reflect.String, reflect.Bool, reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Float32, reflect.Float64:
		return fmt.Sprint(arg)
	}

	raw, err := json.Marshal(arg)
	if err != nil {
		return fmt.Sprintf("%v", arg)
	}
	return string(raw)
}

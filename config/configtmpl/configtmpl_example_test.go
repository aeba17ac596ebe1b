// Copyright (c) 2024 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package configtmpl_test

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/z5labs/appconfig/config"
	"github.com/z5labs/appconfig/config/configtmpl"
)

func render(doc string) string {
	opts := make([]config.RenderTextTemplateOption, 0, len(configtmpl.Funcs()))
	for name, fn := range configtmpl.Funcs() {
		opts = append(opts, config.TemplateFunc(name, fn))
	}

	b, err := io.ReadAll(config.RenderTextTemplate(strings.NewReader(doc), opts...))
	if err != nil {
		return err.Error()
	}
	return string(b)
}

func ExampleEnv() {
	os.Setenv("APP_REGION", "eu-west-1")
	defer os.Unsetenv("APP_REGION")

	fmt.Print(render("appSettings:\n  Region: {{ env \"APP_REGION\" }}\n"))
	// Output:
	// appSettings:
	//   Region: eu-west-1
}

func ExampleDefault() {
	os.Setenv("APP_TIMEOUT", "10")
	defer os.Unsetenv("APP_TIMEOUT")

	fmt.Print(render("appSettings:\n  Timeout: {{ default \"30\" (env \"APP_TIMEOUT\") }}\n"))
	// Output:
	// appSettings:
	//   Timeout: 10
}

func ExampleDefault_unset() {
	os.Unsetenv("APP_TIMEOUT")

	fmt.Print(render("appSettings:\n  Timeout: {{ default \"30\" (env \"APP_TIMEOUT\") }}\n"))
	// Output:
	// appSettings:
	//   Timeout: 30
}

func ExampleDefault_nil() {
	fmt.Println(configtmpl.Default("host=localhost", nil))
	// Output: host=localhost
}

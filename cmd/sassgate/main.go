// sassgate compiles Sass stylesheets to CSS through libsass.
//
// Every option is validated before the native engine sees it: styles and
// precision are range checked, include paths and source map locations are
// resolved against the working directory and checked for access.
//
// Usage:
//
//	# Compile a single file to stdout
//	sassgate compile scss/app.scss
//
//	# Compile stdin with compressed output
//	sassgate compile --style compressed - < app.scss
//
//	# Build every entry in sassgate.yaml
//	sassgate build
//
//	# Rebuild on change, serving metrics and health endpoints
//	sassgate watch --listen 127.0.0.1:9464
//
//	# Check a configuration file
//	sassgate config validate --config ci/sassgate.yaml
package main

func main() {
	Execute()
}

// Package config resolves the settings of the application.
//
// Settings are declared by a [Schema], a tree of sections whose leaves carry
// a default value; the type of the default is the type of the setting.
// Sections written as a map holding only the "<>" key are templates: their
// children are named at runtime and all share the template's shape.
//
// A [Tree] is built by applying [Source] layers one after the other with
// [Override], in the following precedence order (later layers win):
//  1. Schema defaults
//  2. System-scope TOML file
//  3. User-scope TOML file
//  4. Environment variables
//  5. The .env file (debug and docker deployments only)
//  6. Command-line flags
//
// Environment variables, .env variables and flags only reach the leaves
// registered in the [Links] table.
//
// The main entry point is [Load], which returns [Settings] wrapping a
// [Config], the dotted-path accessor used by the rest of the program.
package config

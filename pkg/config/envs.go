package config

// environments maps an environment name to the globals it provides.
// The table covers the environments the linter recognizes in eslint-env
// directives and config files; unknown names are diagnosed by the linter.
//
//nolint:gochecknoglobals // Shared immutable table
var environments = map[string]map[string]GlobalValue{
	"builtin": {
		"Array": GlobalReadonly, "Boolean": GlobalReadonly, "Date": GlobalReadonly,
		"Error": GlobalReadonly, "Function": GlobalReadonly, "JSON": GlobalReadonly,
		"Math": GlobalReadonly, "Number": GlobalReadonly, "Object": GlobalReadonly,
		"RegExp": GlobalReadonly, "String": GlobalReadonly, "isNaN": GlobalReadonly,
		"parseFloat": GlobalReadonly, "parseInt": GlobalReadonly, "undefined": GlobalReadonly,
		"NaN": GlobalReadonly, "Infinity": GlobalReadonly, "eval": GlobalReadonly,
	},
	"es6": {
		"Promise": GlobalReadonly, "Symbol": GlobalReadonly, "Map": GlobalReadonly,
		"Set": GlobalReadonly, "WeakMap": GlobalReadonly, "WeakSet": GlobalReadonly,
		"Proxy": GlobalReadonly, "Reflect": GlobalReadonly,
	},
	"es2020": {
		"BigInt": GlobalReadonly, "globalThis": GlobalReadonly,
	},
	"browser": {
		"window": GlobalReadonly, "document": GlobalReadonly, "navigator": GlobalReadonly,
		"console": GlobalReadonly, "location": GlobalReadonly, "history": GlobalReadonly,
		"localStorage": GlobalReadonly, "sessionStorage": GlobalReadonly,
		"fetch": GlobalReadonly, "setTimeout": GlobalReadonly, "clearTimeout": GlobalReadonly,
		"setInterval": GlobalReadonly, "clearInterval": GlobalReadonly, "alert": GlobalReadonly,
		"URL": GlobalReadonly, "URLSearchParams": GlobalReadonly, "Event": GlobalReadonly,
		"XMLHttpRequest": GlobalReadonly, "requestAnimationFrame": GlobalReadonly,
	},
	"node": {
		"process": GlobalReadonly, "require": GlobalReadonly, "module": GlobalWritable,
		"exports": GlobalWritable, "console": GlobalReadonly, "Buffer": GlobalReadonly,
		"__dirname": GlobalReadonly, "__filename": GlobalReadonly, "global": GlobalReadonly,
		"setTimeout": GlobalReadonly, "clearTimeout": GlobalReadonly,
		"setInterval": GlobalReadonly, "clearInterval": GlobalReadonly,
		"setImmediate": GlobalReadonly, "clearImmediate": GlobalReadonly,
	},
	"commonjs": {
		"require": GlobalReadonly, "module": GlobalWritable,
		"exports": GlobalWritable, "global": GlobalReadonly,
	},
	"worker": {
		"self": GlobalReadonly, "postMessage": GlobalReadonly, "importScripts": GlobalReadonly,
		"console": GlobalReadonly, "fetch": GlobalReadonly,
	},
	"shared-node-browser": {
		"console": GlobalReadonly, "setTimeout": GlobalReadonly, "clearTimeout": GlobalReadonly,
		"setInterval": GlobalReadonly, "clearInterval": GlobalReadonly, "URL": GlobalReadonly,
		"URLSearchParams": GlobalReadonly,
	},
}

// aliasedEnvironments maps alternate env names onto table entries.
//
//nolint:gochecknoglobals // Shared immutable table
var aliasedEnvironments = map[string]string{
	"es2015": "es6",
	"es2017": "es6",
	"es2021": "es6",
	"es2022": "es6",
	"es2024": "es6",
}

// Environment returns the globals provided by the named environment and
// whether the name is known.
func Environment(name string) (map[string]GlobalValue, bool) {
	if target, ok := aliasedEnvironments[name]; ok {
		name = target
	}
	globals, ok := environments[name]
	return globals, ok
}

// EnvironmentNames returns the set of recognized environment names.
func EnvironmentNames() []string {
	names := make([]string, 0, len(environments)+len(aliasedEnvironments))
	for name := range environments {
		names = append(names, name)
	}
	for name := range aliasedEnvironments {
		names = append(names, name)
	}
	return names
}

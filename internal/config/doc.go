// Package config holds the mirrorctl settings structures, the layered
// settings loader (defaults plus an optional user YAML file), and the
// resolution of the on-disk layout the tool operates on: the MagicMirror
// installation, the working directory with the master record and its
// backups, and the fragment templates directory.
package config

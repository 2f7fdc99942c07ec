// Package main hosts the cinewrapped CLI.
//
// generate renders a year in review from Letterboxd exports, serve runs the
// same pipeline behind an HTTP upload API, and the cache and config command
// groups maintain the TMDB lookup cache and the configuration file.
package main

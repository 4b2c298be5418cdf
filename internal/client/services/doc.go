// Package services contains application services for the bookshelf client.
package services

// Package docs Organization Administration API documentation
package docs

// Swagger documentation info
// @title Organization Administration API
// @version 1.0
// @description REST API for managing organizations and their users

// @host localhost:5000
// @BasePath /api
// @schemes http

// @tag.name organizations
// @tag.description Organization management
// @tag.name users
// @tag.description User management
// @tag.name health
// @tag.description Service health

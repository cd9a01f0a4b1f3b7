package main

import (
	"net/http"

	"github.com/julienschmidt/httprouter"
)

func (app *application) routes() http.Handler {
	router := httprouter.New()

	router.NotFound = http.HandlerFunc(app.notFoundErrorResponse)
	router.MethodNotAllowed = http.HandlerFunc(app.methodNotAllowedErrorResponse)

	router.HandlerFunc(http.MethodGet, "/healthcheck", app.healthCheckHandler)

	router.HandlerFunc(http.MethodPost, "/signup", app.signupHandler)
	router.HandlerFunc(http.MethodPost, "/signin", app.signinHandler)

	router.HandlerFunc(http.MethodGet, "/get-upload-url", app.getUploadURLHandler)

	router.HandlerFunc(http.MethodGet, "/latest-blogs", app.latestBlogsHandler)
	router.HandlerFunc(http.MethodPost, "/create-blog", app.requireAuthUser(app.createBlogHandler))
	router.HandlerFunc(http.MethodPost, "/get-blog", app.getBlogHandler)

	return app.recoverPanic(app.logRequest(app.enableCORS(router)))
}

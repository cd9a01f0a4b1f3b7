package main

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/sushihentaime/inkpost/internal/blogservice"
	"github.com/sushihentaime/inkpost/internal/common"
	"github.com/sushihentaime/inkpost/internal/userservice"
)

type signupRequest struct {
	Fullname string `json:"fullname"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (app *application) signupHandler(w http.ResponseWriter, r *http.Request) {
	var input signupRequest

	err := app.parseJSON(w, r, &input)
	if err != nil {
		app.badRequestErrorResponse(w, r, err)
		return
	}

	session, err := app.userService.Signup(r.Context(), input.Fullname, input.Email, input.Password)
	if err != nil {
		var validationErr common.ValidationError
		switch {
		case errors.As(err, &validationErr):
			app.forbiddenResponse(w, r, validationErr.Message)
		case errors.Is(err, userservice.ErrDuplicateEmail):
			app.conflictResponse(w, r, "email already exists")
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	app.writeSession(w, r, session)
}

type signinRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (app *application) signinHandler(w http.ResponseWriter, r *http.Request) {
	var input signinRequest

	err := app.parseJSON(w, r, &input)
	if err != nil {
		app.badRequestErrorResponse(w, r, err)
		return
	}

	session, err := app.userService.Signin(r.Context(), input.Email, input.Password)
	if err != nil {
		switch {
		case errors.Is(err, userservice.ErrNotFound):
			app.forbiddenResponse(w, r, userservice.ErrNotFound.Error())
		case errors.Is(err, userservice.ErrIncorrectPassword):
			app.forbiddenResponse(w, r, userservice.ErrIncorrectPassword.Error())
		case errors.Is(err, userservice.ErrVerification):
			app.logError(r, err)
			app.forbiddenResponse(w, r, userservice.ErrVerification.Error())
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	app.writeSession(w, r, session)
}

func (app *application) writeSession(w http.ResponseWriter, r *http.Request, session *userservice.Session) {
	env := envelope{
		"access_token": session.AccessToken,
		"profile_img":  session.ProfileImg,
		"username":     session.Username,
		"fullname":     session.Fullname,
	}

	err := app.writeJSON(w, http.StatusOK, env, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *application) getUploadURLHandler(w http.ResponseWriter, r *http.Request) {
	url, err := app.uploadService.IssueUploadURL(r.Context())
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	err = app.writeJSON(w, http.StatusOK, envelope{"uploadURL": url}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *application) latestBlogsHandler(w http.ResponseWriter, r *http.Request) {
	blogs, err := app.blogService.ListLatest(r.Context())
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	err = app.writeJSON(w, http.StatusOK, envelope{"blogs": blogs}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *application) createBlogHandler(w http.ResponseWriter, r *http.Request) {
	actor := app.contextGetActor(r)

	var input blogservice.CreateBlogRequest

	err := app.parseJSON(w, r, &input)
	if err != nil {
		app.badRequestErrorResponse(w, r, err)
		return
	}

	id, err := app.blogService.Publish(r.Context(), actor.ID, blogservice.NewSubmission(input))
	if err != nil {
		var (
			validationErr common.ValidationError
			secondaryErr  common.SecondaryUpdateError
		)
		switch {
		case errors.As(err, &validationErr):
			app.forbiddenResponse(w, r, validationErr.Message)
		case errors.As(err, &secondaryErr):
			app.logger.Error("blog stored without author update", slog.String("blog_id", id), slog.Int64("author", actor.ID))
			app.serverErrorResponse(w, r, err)
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	err = app.writeJSON(w, http.StatusOK, envelope{"id": id}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

type getBlogRequest struct {
	BlogID string `json:"blog_id"`
}

func (app *application) getBlogHandler(w http.ResponseWriter, r *http.Request) {
	var input getBlogRequest

	err := app.parseJSON(w, r, &input)
	if err != nil {
		app.badRequestErrorResponse(w, r, err)
		return
	}

	blog, err := app.blogService.Fetch(r.Context(), input.BlogID)
	if err != nil {
		var validationErr common.ValidationError
		switch {
		case errors.As(err, &validationErr):
			app.forbiddenResponse(w, r, validationErr.Message)
		case errors.Is(err, blogservice.ErrRecordNotFound):
			app.blogNotFoundResponse(w, r, err)
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	err = app.writeJSON(w, http.StatusOK, envelope{"blog": blog}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *application) healthCheckHandler(w http.ResponseWriter, r *http.Request) {
	env := envelope{
		"status": "available",
		"system_info": map[string]string{
			"environment": app.config.Environment,
			"version":     app.config.Version,
		},
	}

	err := app.writeJSON(w, http.StatusOK, env, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

package httpapi

import (
	"net/http"

	"inkwell/internal/core/apperr"
	"inkwell/internal/ports/storage"
	userPort "inkwell/internal/ports/user"

	"github.com/gin-gonic/gin"
)

type UserController struct{ uc UserUseCase }

func NewUserController(uc UserUseCase) *UserController { return &UserController{uc: uc} }

func (ctl *UserController) RegisterUser(c *gin.Context) {
	var req struct {
		Username  string `json:"username" binding:"required,max=150"`
		Email     string `json:"email" binding:"required,email"`
		Password  string `json:"password" binding:"required,min=6"`
		FirstName string `json:"first_name"`
		LastName  string `json:"last_name"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		failBinding(c, err)
		return
	}
	res, err := ctl.uc.RegisterUser(c.Request.Context(), userPort.RegisterRequest{
		Username:  req.Username,
		Email:     req.Email,
		Password:  req.Password,
		FirstName: req.FirstName,
		LastName:  req.LastName,
	})
	if err != nil {
		fail(c, err)
		return
	}
	respond(c, http.StatusCreated, "User registered successfully", res)
}

func (ctl *UserController) LoginUser(c *gin.Context) {
	var req struct {
		Username string `json:"username" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		failBinding(c, err)
		return
	}
	res, err := ctl.uc.LoginUser(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, "Login successfully", res)
}

func (ctl *UserController) RefreshToken(c *gin.Context) {
	var req struct {
		Refresh string `json:"refresh" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		failBinding(c, err)
		return
	}
	res, err := ctl.uc.RefreshToken(c.Request.Context(), req.Refresh)
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, "Token refreshed successfully", res)
}

func (ctl *UserController) Logout(c *gin.Context) {
	var req struct {
		Refresh string `json:"refresh" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		failBinding(c, err)
		return
	}
	if err := ctl.uc.Logout(c.Request.Context(), actorID(c), req.Refresh, tokenClaims(c)); err != nil {
		fail(c, err)
		return
	}
	ok(c, "Logout successfully", nil)
}

func (ctl *UserController) ListUsers(c *gin.Context) {
	users, err := ctl.uc.ListUsers(c.Request.Context(), c.Query("username"))
	if err != nil {
		fail(c, err)
		return
	}
	listed(c, "users", users)
}

func (ctl *UserController) GetUser(c *gin.Context) {
	profile, err := ctl.uc.GetUser(c.Request.Context(), actorID(c), c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	got(c, "user", profile)
}

func (ctl *UserController) UpdateProfile(c *gin.Context) {
	var req userPort.ProfileUpdate
	if err := c.ShouldBindJSON(&req); err != nil {
		failBinding(c, err)
		return
	}
	profile, err := ctl.uc.UpdateProfile(c.Request.Context(), actorID(c), req)
	if err != nil {
		fail(c, err)
		return
	}
	updated(c, "user", profile)
}

func (ctl *UserController) ChangePassword(c *gin.Context) {
	var req struct {
		OldPassword string `json:"old_password" binding:"required"`
		NewPassword string `json:"new_password" binding:"required,min=6"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		failBinding(c, err)
		return
	}
	if err := ctl.uc.ChangePassword(c.Request.Context(), actorID(c), req.OldPassword, req.NewPassword); err != nil {
		fail(c, err)
		return
	}
	ok(c, "Password changed successfully", nil)
}

func (ctl *UserController) DeleteAccount(c *gin.Context) {
	if err := ctl.uc.DeleteAccount(c.Request.Context(), actorID(c)); err != nil {
		fail(c, err)
		return
	}
	deleted(c, "user")
}

func (ctl *UserController) UploadAvatar(c *gin.Context) {
	file, closeFn, err := formUpload(c, "avatar")
	if err != nil {
		fail(c, err)
		return
	}
	defer closeFn()

	profile, err := ctl.uc.UploadAvatar(c.Request.Context(), actorID(c), file)
	if err != nil {
		fail(c, err)
		return
	}
	updated(c, "user", profile)
}

// formUpload opens the multipart file under field.
func formUpload(c *gin.Context, field string) (storage.Upload, func(), error) {
	header, err := c.FormFile(field)
	if err != nil {
		return storage.Upload{}, nil, apperr.Validation("Invalid data provided", map[string]string{field: "No file was submitted."})
	}
	f, err := header.Open()
	if err != nil {
		return storage.Upload{}, nil, apperr.Wrap(apperr.KindBadRequest, "Could not read uploaded file", err)
	}
	return storage.Upload{
		Filename:    header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Size:        header.Size,
		Body:        f,
	}, func() { _ = f.Close() }, nil
}

type SocialLinkController struct{ uc UserUseCase }

func NewSocialLinkController(uc UserUseCase) *SocialLinkController {
	return &SocialLinkController{uc: uc}
}

type socialLinkRequest struct {
	Link string `json:"link" binding:"required,url,max=200"`
}

func (ctl *SocialLinkController) List(c *gin.Context) {
	links, err := ctl.uc.ListSocialLinks(c.Request.Context(), actorID(c))
	if err != nil {
		fail(c, err)
		return
	}
	listed(c, "social media links", links)
}

func (ctl *SocialLinkController) Create(c *gin.Context) {
	var req socialLinkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		failBinding(c, err)
		return
	}
	link, err := ctl.uc.CreateSocialLink(c.Request.Context(), actorID(c), req.Link)
	if err != nil {
		fail(c, err)
		return
	}
	created(c, "social media link", link)
}

func (ctl *SocialLinkController) Update(c *gin.Context) {
	var req socialLinkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		failBinding(c, err)
		return
	}
	link, err := ctl.uc.UpdateSocialLink(c.Request.Context(), actorID(c), c.Param("id"), req.Link)
	if err != nil {
		fail(c, err)
		return
	}
	updated(c, "social media link", link)
}

func (ctl *SocialLinkController) Delete(c *gin.Context) {
	if err := ctl.uc.DeleteSocialLink(c.Request.Context(), actorID(c), c.Param("id")); err != nil {
		fail(c, err)
		return
	}
	deleted(c, "social media link")
}

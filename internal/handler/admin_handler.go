package handler

import (
	"errors"
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/inkpress/internal/db"
	"github.com/inkpress/internal/service"
	"golang.org/x/crypto/bcrypt"
)

// ShowLoginPage 渲染登录页面
func (a *API) ShowLoginPage(c *gin.Context) {
	c.HTML(http.StatusOK, "login.html", gin.H{
		"title": "Sign in",
		"site":  a.siteName(),
	})
}

// Login 处理管理员登录请求
func (a *API) Login(c *gin.Context) {
	username := c.PostForm("username")
	password := c.PostForm("password")

	var user db.AdminUser
	if err := a.db.Where("username = ?", username).First(&user).Error; err != nil {
		c.HTML(http.StatusUnauthorized, "login.html", gin.H{"error": "Invalid username or password"})
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		c.HTML(http.StatusUnauthorized, "login.html", gin.H{"error": "Invalid username or password"})
		return
	}

	session := sessions.Default(c)
	session.Set("user_id", user.ID)
	session.Set("username", user.Username)
	if err := session.Save(); err != nil {
		c.HTML(http.StatusInternalServerError, "login.html", gin.H{"error": "Failed to save session"})
		return
	}

	c.Redirect(http.StatusFound, "/admin/dashboard")
}

// Logout 处理管理员登出
func (a *API) Logout(c *gin.Context) {
	session := sessions.Default(c)
	session.Clear()
	session.Save()
	c.Redirect(http.StatusFound, "/admin/login")
}

// AuthRequired 是一个简单的认证中间件
func AuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		session := sessions.Default(c)
		userID := session.Get("user_id")
		if userID == nil {
			c.Redirect(http.StatusFound, "/admin/login")
			c.Abort()
			return
		}
		c.Next()
	}
}

// ShowDashboard 渲染后台主面板
func (a *API) ShowDashboard(c *gin.Context) {
	session := sessions.Default(c)
	username := session.Get("username")

	var postCount, authorCount int64
	a.db.Model(&db.Post{}).Count(&postCount)
	a.db.Model(&db.Author{}).Count(&authorCount)

	c.HTML(http.StatusOK, "dashboard.html", gin.H{
		"title":       "Dashboard",
		"site":        a.siteName(),
		"username":    username,
		"postCount":   postCount,
		"authorCount": authorCount,
	})
}

// ShowPostList 渲染文章管理列表页面
func (a *API) ShowPostList(c *gin.Context) {
	posts, err := a.posts.ListAll()
	if err != nil {
		c.HTML(http.StatusInternalServerError, "post_list.html", gin.H{
			"title": "Posts",
			"site":  a.siteName(),
			"error": "Failed to load posts",
		})
		return
	}

	c.HTML(http.StatusOK, "post_list.html", gin.H{
		"title": "Posts",
		"site":  a.siteName(),
		"posts": posts,
	})
}

// ShowPostEdit 渲染文章编辑页面
func (a *API) ShowPostEdit(c *gin.Context) {
	data := gin.H{
		"title": "New post",
		"site":  a.siteName(),
	}

	if id := c.Param("id"); id != "" {
		post, authorIDs, err := a.posts.Get(id)
		if err == nil {
			data["title"] = "Edit post"
			data["post"] = post
			data["authorIds"] = authorIDs
		}
	}

	c.HTML(http.StatusOK, "post_edit.html", data)
}

type postRequest struct {
	Title            string   `json:"title"`
	Excerpt          string   `json:"excerpt"`
	Content          string   `json:"content"`
	AuthorIDs        []string `json:"authorIds"`
	FeaturedImage    string   `json:"featuredImage"`
	FeaturedImageAlt string   `json:"featuredImageAlt"`
	Tags             []string `json:"tags"`
	CategoryID       string   `json:"categoryId"`
	Status           string   `json:"status"`
}

func (r postRequest) toInput() service.PostInput {
	return service.PostInput{
		Title:            r.Title,
		Excerpt:          r.Excerpt,
		Content:          r.Content,
		AuthorIDs:        r.AuthorIDs,
		FeaturedImage:    r.FeaturedImage,
		FeaturedImageAlt: r.FeaturedImageAlt,
		Tags:             r.Tags,
		CategoryID:       r.CategoryID,
		Status:           r.Status,
	}
}

// GetPosts 返回全部文章，供后台列表使用
func (a *API) GetPosts(c *gin.Context) {
	posts, err := a.posts.ListAll()
	if err != nil {
		respondStorageError(c, err, "Failed to fetch posts")
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "posts": posts})
}

// GetPost 返回单篇文章及其有序作者
func (a *API) GetPost(c *gin.Context) {
	post, authorIDs, err := a.posts.Get(c.Param("id"))
	if err != nil {
		if errors.Is(err, service.ErrPostNotFound) {
			respondError(c, http.StatusNotFound, "Post not found")
			return
		}
		respondStorageError(c, err, "Failed to fetch post")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"post":    post,
		"authorIds": authorIDs,
	})
}

// CreatePost 创建新文章
func (a *API) CreatePost(c *gin.Context) {
	var req postRequest
	if !bindJSON(c, &req, "Invalid request body") {
		return
	}

	post, err := a.posts.Create(req.toInput())
	if err != nil {
		switch {
		case errors.Is(err, service.ErrMissingFields), errors.Is(err, service.ErrAuthorRequired):
			respondError(c, http.StatusBadRequest, err.Error())
		default:
			respondStorageError(c, err, "Failed to create blog post")
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "Blog post created successfully",
		"id":      post.ID,
		"slug":    post.Slug,
	})
}

// UpdatePost 更新文章
func (a *API) UpdatePost(c *gin.Context) {
	var req postRequest
	if !bindJSON(c, &req, "Invalid request body") {
		return
	}

	post, err := a.posts.Update(c.Param("id"), req.toInput())
	if err != nil {
		switch {
		case errors.Is(err, service.ErrPostNotFound):
			respondError(c, http.StatusNotFound, "Post not found")
		case errors.Is(err, service.ErrMissingFields), errors.Is(err, service.ErrAuthorRequired):
			respondError(c, http.StatusBadRequest, err.Error())
		default:
			respondStorageError(c, err, "Failed to update post")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Post updated successfully",
		"post":    gin.H{"id": post.ID, "slug": post.Slug},
	})
}

// DeletePost 删除文章及其作者关联
func (a *API) DeletePost(c *gin.Context) {
	if err := a.posts.Delete(c.Param("id")); err != nil {
		if errors.Is(err, service.ErrPostNotFound) {
			respondError(c, http.StatusNotFound, "Post not found")
			return
		}
		respondStorageError(c, err, "Failed to delete post")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Post deleted successfully",
	})
}

type authorRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Title    string `json:"title"`
	Bio      string `json:"bio"`
	Avatar   string `json:"avatar"`
	Twitter  string `json:"twitter"`
	LinkedIn string `json:"linkedin"`
	GitHub   string `json:"github"`
	Website  string `json:"website"`
}

// GetAuthors 返回全部作者
func (a *API) GetAuthors(c *gin.Context) {
	authors, err := a.authors.List()
	if err != nil {
		respondStorageError(c, err, "Failed to fetch authors")
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "authors": authors})
}

// CreateAuthor 创建新作者
func (a *API) CreateAuthor(c *gin.Context) {
	var req authorRequest
	if !bindJSON(c, &req, "Invalid request body") {
		return
	}

	author, err := a.authors.Create(service.AuthorInput{
		Name:     req.Name,
		Email:    req.Email,
		Title:    req.Title,
		Bio:      req.Bio,
		Avatar:   req.Avatar,
		Twitter:  req.Twitter,
		LinkedIn: req.LinkedIn,
		GitHub:   req.GitHub,
		Website:  req.Website,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrAuthorFields):
			respondError(c, http.StatusBadRequest, "Name and email are required")
		case errors.Is(err, service.ErrEmailRegistered):
			respondError(c, http.StatusBadRequest, "An author with this email already exists")
		default:
			respondStorageError(c, err, "Failed to create author")
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{"success": true, "author": author})
}

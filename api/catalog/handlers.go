// Package catalog exposes the relational demo endpoints: users, profiles,
// posts, products, and orders with their product associations.
package catalog

import (
	"github.com/gin-gonic/gin"

	"github.com/kbukum/webdemo/logger"
	"github.com/kbukum/webdemo/server"
	"github.com/kbukum/webdemo/store"
	"github.com/kbukum/webdemo/validation"
)

// Handler serves the /catalog route group.
type Handler struct {
	repo *store.Repository
	log  *logger.Logger
}

// New creates a Handler.
func New(repo *store.Repository, log *logger.Logger) *Handler {
	return &Handler{
		repo: repo,
		log:  log.WithComponent("catalog"),
	}
}

// Register mounts the routes on the given group.
func (h *Handler) Register(rg *gin.RouterGroup) {
	cat := rg.Group("/catalog")
	cat.POST("/users", h.createUser)
	cat.GET("/users", h.listUsers)
	cat.GET("/users/:username", h.getUser)
	cat.POST("/users/:username/profile", h.createProfile)
	cat.POST("/users/:username/posts", h.createPosts)
	cat.GET("/posts", h.listPosts)
	cat.POST("/products", h.createProduct)
	cat.GET("/products", h.listProducts)
	cat.POST("/orders", h.createOrder)
	cat.GET("/orders", h.listOrders)
	cat.POST("/orders/:id/products", h.addProductToOrder)
}

type createUserRequest struct {
	Username string `json:"username" validate:"required,max=32"`
}

func (h *Handler) createUser(c *gin.Context) {
	var req createUserRequest
	if err := bindAndValidate(c, &req); err != nil {
		server.RespondWithError(c, err)
		return
	}

	user, err := h.repo.CreateUser(c.Request.Context(), req.Username)
	if err != nil {
		server.RespondWithError(c, err)
		return
	}
	h.log.Info("User created", map[string]interface{}{
		"username": user.Username,
	})
	server.RespondCreated(c, user)
}

func (h *Handler) listUsers(c *gin.Context) {
	users, err := h.repo.ListUsers(c.Request.Context())
	if err != nil {
		server.RespondWithError(c, err)
		return
	}
	server.RespondOK(c, users)
}

func (h *Handler) getUser(c *gin.Context) {
	user, err := h.repo.UserWithProfileAndPosts(c.Request.Context(), c.Param("username"))
	if err != nil {
		server.RespondWithError(c, err)
		return
	}
	server.RespondOK(c, user)
}

type createProfileRequest struct {
	FirstName string  `json:"first_name" validate:"required,max=40"`
	LastName  string  `json:"last_name" validate:"required,max=40"`
	Bio       *string `json:"bio"`
}

func (h *Handler) createProfile(c *gin.Context) {
	var req createProfileRequest
	if err := bindAndValidate(c, &req); err != nil {
		server.RespondWithError(c, err)
		return
	}

	user, err := h.repo.GetUserByUsername(c.Request.Context(), c.Param("username"))
	if err != nil {
		server.RespondWithError(c, err)
		return
	}

	profile, err := h.repo.CreateProfile(c.Request.Context(), user.ID, req.FirstName, req.LastName, req.Bio)
	if err != nil {
		server.RespondWithError(c, err)
		return
	}
	server.RespondCreated(c, profile)
}

type createPostRequest struct {
	Title string `json:"title" validate:"required,max=100"`
	Body  string `json:"body"`
}

type createPostsRequest struct {
	Posts []createPostRequest `json:"posts" validate:"required,min=1,dive"`
}

func (h *Handler) createPosts(c *gin.Context) {
	var req createPostsRequest
	if err := bindAndValidate(c, &req); err != nil {
		server.RespondWithError(c, err)
		return
	}

	user, err := h.repo.GetUserByUsername(c.Request.Context(), c.Param("username"))
	if err != nil {
		server.RespondWithError(c, err)
		return
	}

	posts := make([]store.Post, len(req.Posts))
	for i, p := range req.Posts {
		posts[i] = store.Post{Title: p.Title, Body: p.Body}
	}

	created, err := h.repo.CreatePosts(c.Request.Context(), user.ID, posts)
	if err != nil {
		server.RespondWithError(c, err)
		return
	}
	server.RespondCreated(c, created)
}

func (h *Handler) listPosts(c *gin.Context) {
	posts, err := h.repo.PostsWithAuthor(c.Request.Context())
	if err != nil {
		server.RespondWithError(c, err)
		return
	}
	server.RespondOK(c, posts)
}

type createProductRequest struct {
	Name        string `json:"name" validate:"required,max=100"`
	Description string `json:"description" validate:"required"`
	Price       int    `json:"price" validate:"gte=0"`
}

func (h *Handler) createProduct(c *gin.Context) {
	var req createProductRequest
	if err := bindAndValidate(c, &req); err != nil {
		server.RespondWithError(c, err)
		return
	}

	product, err := h.repo.CreateProduct(c.Request.Context(), req.Name, req.Description, req.Price)
	if err != nil {
		server.RespondWithError(c, err)
		return
	}
	server.RespondCreated(c, product)
}

func (h *Handler) listProducts(c *gin.Context) {
	products, err := h.repo.ListProducts(c.Request.Context())
	if err != nil {
		server.RespondWithError(c, err)
		return
	}
	server.RespondOK(c, products)
}

type createOrderRequest struct {
	Promocode *string `json:"promocode"`
}

func (h *Handler) createOrder(c *gin.Context) {
	var req createOrderRequest
	// An empty body is a valid order without promocode.
	if c.Request.ContentLength > 0 {
		if err := bindAndValidate(c, &req); err != nil {
			server.RespondWithError(c, err)
			return
		}
	}

	order, err := h.repo.CreateOrder(c.Request.Context(), req.Promocode)
	if err != nil {
		server.RespondWithError(c, err)
		return
	}
	server.RespondCreated(c, order)
}

func (h *Handler) listOrders(c *gin.Context) {
	orders, err := h.repo.OrdersWithProductDetails(c.Request.Context())
	if err != nil {
		server.RespondWithError(c, err)
		return
	}
	server.RespondOK(c, orders)
}

type addProductRequest struct {
	ProductID uint `json:"product_id" validate:"required"`
	Count     int  `json:"count" validate:"gte=0"`
	UnitPrice int  `json:"unit_price" validate:"gte=0"`
}

func (h *Handler) addProductToOrder(c *gin.Context) {
	var req addProductRequest
	if err := bindAndValidate(c, &req); err != nil {
		server.RespondWithError(c, err)
		return
	}
	if req.Count == 0 {
		req.Count = 1
	}

	orderID, err := parseID(c.Param("id"))
	if err != nil {
		server.RespondWithError(c, err)
		return
	}

	assoc, err := h.repo.AddProductToOrder(c.Request.Context(), orderID, req.ProductID, req.Count, req.UnitPrice)
	if err != nil {
		server.RespondWithError(c, err)
		return
	}
	server.RespondCreated(c, assoc)
}

// bindAndValidate decodes the JSON body and runs struct validation.
func bindAndValidate(c *gin.Context, req any) error {
	if err := c.ShouldBindJSON(req); err != nil {
		return validationError(err)
	}
	return validation.Validate(req)
}

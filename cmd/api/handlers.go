package main

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"sync"
	"time"

	cartapp "github.com/arkanhakim/livecart/internal/cart/app"
	cartdom "github.com/arkanhakim/livecart/internal/cart/domain"
	catalogapp "github.com/arkanhakim/livecart/internal/catalog/app"
	catalogdom "github.com/arkanhakim/livecart/internal/catalog/domain"
	checkoutapp "github.com/arkanhakim/livecart/internal/checkout/app"
	orderapp "github.com/arkanhakim/livecart/internal/order/app"
	orderdom "github.com/arkanhakim/livecart/internal/order/domain"
	"github.com/arkanhakim/livecart/pkg/money"
	"github.com/google/uuid"
)

type handlers struct {
	cart     *cartapp.Service
	catalog  *catalogapp.Service
	orders   *orderapp.Service
	payments checkoutapp.PaymentMethodSource
	qr       checkoutapp.QREncoder
	log      *slog.Logger

	newWizard func(userID string) *checkoutapp.Wizard

	mu       sync.Mutex
	sessions map[string]*checkoutapp.Wizard
}

func newHandlers(
	cart *cartapp.Service,
	catalog *catalogapp.Service,
	orders *orderapp.Service,
	payments checkoutapp.PaymentMethodSource,
	qr checkoutapp.QREncoder,
	newWizard func(userID string) *checkoutapp.Wizard,
	log *slog.Logger,
) *handlers {
	return &handlers{
		cart:      cart,
		catalog:   catalog,
		orders:    orders,
		payments:  payments,
		qr:        qr,
		newWizard: newWizard,
		log:       log,
		sessions:  make(map[string]*checkoutapp.Wizard),
	}
}

func (h *handlers) routes(mux *http.ServeMux) {
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusOK) })
	mux.HandleFunc("GET /readyz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusOK) })

	mux.HandleFunc("GET /carts", h.getAggregatedCart)
	mux.HandleFunc("DELETE /carts", h.clearAllCarts)
	mux.HandleFunc("GET /carts/{vendorID}", h.getVendorCart)
	mux.HandleFunc("DELETE /carts/{vendorID}", h.clearVendorCart)
	mux.HandleFunc("GET /carts/{vendorID}/count", h.getVendorCartCount)
	mux.HandleFunc("POST /carts/{vendorID}/items", h.addToCart)
	mux.HandleFunc("POST /carts/{vendorID}/items/{productID}/increase", h.increaseQuantity)
	mux.HandleFunc("POST /carts/{vendorID}/items/{productID}/decrease", h.decreaseQuantity)
	mux.HandleFunc("DELETE /carts/{vendorID}/items/{productID}", h.removeFromCart)

	mux.HandleFunc("GET /products", h.listProducts)
	mux.HandleFunc("POST /products", h.createProduct)
	mux.HandleFunc("GET /products/{id}", h.getProduct)
	mux.HandleFunc("DELETE /products/{id}", h.deleteProduct)
	mux.HandleFunc("GET /categories", h.listCategories)
	mux.HandleFunc("GET /lives", h.listLives)
	mux.HandleFunc("GET /lives/{id}/catalog", h.getLiveCatalog)

	mux.HandleFunc("GET /payment-methods", h.listPaymentMethods)

	mux.HandleFunc("POST /checkout/sessions", h.createSession)
	mux.HandleFunc("GET /checkout/sessions/{id}", h.getSession)
	mux.HandleFunc("POST /checkout/sessions/{id}/contact", h.setContact)
	mux.HandleFunc("POST /checkout/sessions/{id}/address", h.setAddress)
	mux.HandleFunc("GET /checkout/sessions/{id}/payment-methods", h.sessionPaymentMethods)
	mux.HandleFunc("POST /checkout/sessions/{id}/payment", h.selectPayment)
	mux.HandleFunc("POST /checkout/sessions/{id}/next", h.sessionNext)
	mux.HandleFunc("POST /checkout/sessions/{id}/back", h.sessionBack)
	mux.HandleFunc("POST /checkout/sessions/{id}/submit", h.sessionSubmit)

	mux.HandleFunc("GET /orders", h.listOrders)
	mux.HandleFunc("GET /orders/{id}", h.getOrder)
	mux.HandleFunc("GET /orders/{id}/qr", h.getOrderQR)
}

func (h *handlers) writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.log.Error("encode response", slog.Any("err", err))
	}
}

func (h *handlers) writeError(w http.ResponseWriter, err error) {
	code, errCode, msg := httpStatusFromError(err)
	if code >= http.StatusInternalServerError {
		h.log.Error("request failed", slog.Any("err", err))
	}
	h.writeJSON(w, code, map[string]string{"error": errCode, "message": msg})
}

func (h *handlers) readJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		h.writeJSON(w, http.StatusBadRequest, map[string]string{"error": "BAD_JSON", "message": "malformed request body"})
		return false
	}
	return true
}

// ---- cart ----

func (h *handlers) getAggregatedCart(w http.ResponseWriter, r *http.Request) {
	rows, err := h.cart.Rows(r.Context())
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, map[string]any{
		"rows":       rows,
		"grandTotal": cartdom.GrandTotal(rows),
	})
}

func (h *handlers) getVendorCart(w http.ResponseWriter, r *http.Request) {
	cart, err := h.cart.CartByVendor(r.Context(), r.PathValue("vendorID"))
	if err != nil {
		h.writeError(w, err)
		return
	}
	if cart == nil {
		cart = cartdom.VendorCart{}
	}
	h.writeJSON(w, http.StatusOK, cart)
}

func (h *handlers) getVendorCartCount(w http.ResponseWriter, r *http.Request) {
	count, err := h.cart.CountByVendor(r.Context(), r.PathValue("vendorID"))
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, map[string]int{"count": count})
}

func (h *handlers) addToCart(w http.ResponseWriter, r *http.Request) {
	var item cartdom.LineItem
	if !h.readJSON(w, r, &item) {
		return
	}
	if item.ID == "" {
		h.writeJSON(w, http.StatusBadRequest, map[string]string{"error": "INVALID_ARGUMENT", "message": "item id is required"})
		return
	}

	cart, err := h.cart.AddToCart(r.Context(), r.PathValue("vendorID"), item)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, cart)
}

func (h *handlers) increaseQuantity(w http.ResponseWriter, r *http.Request) {
	h.cartMutation(w, r, h.cart.IncreaseQuantity)
}

func (h *handlers) decreaseQuantity(w http.ResponseWriter, r *http.Request) {
	h.cartMutation(w, r, h.cart.DecreaseQuantity)
}

func (h *handlers) removeFromCart(w http.ResponseWriter, r *http.Request) {
	h.cartMutation(w, r, h.cart.RemoveFromCart)
}

func (h *handlers) cartMutation(w http.ResponseWriter, r *http.Request, op func(ctx context.Context, vendorID, productID string) error) {
	if err := op(r.Context(), r.PathValue("vendorID"), r.PathValue("productID")); err != nil {
		h.writeError(w, err)
		return
	}
	cart, err := h.cart.CartByVendor(r.Context(), r.PathValue("vendorID"))
	if err != nil {
		h.writeError(w, err)
		return
	}
	if cart == nil {
		cart = cartdom.VendorCart{}
	}
	h.writeJSON(w, http.StatusOK, cart)
}

func (h *handlers) clearVendorCart(w http.ResponseWriter, r *http.Request) {
	if err := h.cart.ClearVendor(r.Context(), r.PathValue("vendorID")); err != nil {
		h.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *handlers) clearAllCarts(w http.ResponseWriter, r *http.Request) {
	if err := h.cart.ClearAll(r.Context()); err != nil {
		h.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ---- catalog ----

type productDTO struct {
	ID          string       `json:"id"`
	VendorID    string       `json:"vendorId"`
	CategoryID  string       `json:"categoryId"`
	Title       string       `json:"title"`
	Description string       `json:"description"`
	Image       string       `json:"image"`
	Price       money.Amount `json:"price"`
	CreatedAt   time.Time    `json:"createdAt"`
}

func toProductDTO(p catalogdom.Product) productDTO {
	return productDTO{
		ID:          p.ID,
		VendorID:    p.VendorID,
		CategoryID:  p.CategoryID,
		Title:       p.Title,
		Description: p.Description,
		Image:       p.Image,
		Price:       p.Price,
		CreatedAt:   p.CreatedAt,
	}
}

func toProductDTOs(ps []catalogdom.Product) []productDTO {
	out := make([]productDTO, 0, len(ps))
	for _, p := range ps {
		out = append(out, toProductDTO(p))
	}
	return out
}

func (h *handlers) listProducts(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	var (
		products []catalogdom.Product
		err      error
	)
	switch {
	case q.Get("vendorId") != "":
		products, err = h.catalog.ProductsByVendor(r.Context(), q.Get("vendorId"))
	case q.Get("categoryId") != "":
		products, err = h.catalog.ProductsByCategory(r.Context(), q.Get("categoryId"))
	default:
		err = catalogapp.ErrInvalidInput
	}
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, toProductDTOs(products))
}

func (h *handlers) createProduct(w http.ResponseWriter, r *http.Request) {
	var req productDTO
	if !h.readJSON(w, r, &req) {
		return
	}

	p, err := h.catalog.CreateProduct(r.Context(), catalogdom.Product{
		VendorID:    req.VendorID,
		CategoryID:  req.CategoryID,
		Title:       req.Title,
		Description: req.Description,
		Image:       req.Image,
		Price:       req.Price,
	})
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusCreated, toProductDTO(p))
}

func (h *handlers) getProduct(w http.ResponseWriter, r *http.Request) {
	p, err := h.catalog.GetProduct(r.Context(), r.PathValue("id"))
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, toProductDTO(p))
}

func (h *handlers) deleteProduct(w http.ResponseWriter, r *http.Request) {
	if err := h.catalog.DeleteProduct(r.Context(), r.PathValue("id")); err != nil {
		h.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *handlers) listCategories(w http.ResponseWriter, r *http.Request) {
	cats, err := h.catalog.Categories(r.Context())
	if err != nil {
		h.writeError(w, err)
		return
	}

	type categoryDTO struct {
		ID    string `json:"id"`
		Name  string `json:"name"`
		Image string `json:"image"`
	}
	out := make([]categoryDTO, 0, len(cats))
	for _, c := range cats {
		out = append(out, categoryDTO{ID: c.ID, Name: c.Name, Image: c.Image})
	}
	h.writeJSON(w, http.StatusOK, out)
}

type liveDTO struct {
	ID         string    `json:"id"`
	VendorID   string    `json:"vendorId"`
	Title      string    `json:"title"`
	VideoURL   string    `json:"videoUrl"`
	ProductIDs []string  `json:"productIds"`
	CreatedAt  time.Time `json:"createdAt"`
}

func (h *handlers) listLives(w http.ResponseWriter, r *http.Request) {
	var (
		lives []catalogdom.Live
		err   error
	)
	if vendorID := r.URL.Query().Get("vendorId"); vendorID != "" {
		lives, err = h.catalog.LivesByVendor(r.Context(), vendorID)
	} else {
		lives, err = h.catalog.RecentLives(r.Context(), 20)
	}
	if err != nil {
		h.writeError(w, err)
		return
	}

	out := make([]liveDTO, 0, len(lives))
	for _, l := range lives {
		out = append(out, liveDTO{
			ID: l.ID, VendorID: l.VendorID, Title: l.Title,
			VideoURL: l.VideoURL, ProductIDs: l.ProductIDs, CreatedAt: l.CreatedAt,
		})
	}
	h.writeJSON(w, http.StatusOK, out)
}

func (h *handlers) getLiveCatalog(w http.ResponseWriter, r *http.Request) {
	products, err := h.catalog.LiveCatalog(r.Context(), r.PathValue("id"))
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, toProductDTOs(products))
}

func (h *handlers) listPaymentMethods(w http.ResponseWriter, r *http.Request) {
	methods, err := h.payments.ListPaymentMethods(r.Context())
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, methods)
}

// ---- checkout sessions ----

func (h *handlers) session(w http.ResponseWriter, r *http.Request) (*checkoutapp.Wizard, bool) {
	h.mu.Lock()
	wiz, ok := h.sessions[r.PathValue("id")]
	h.mu.Unlock()
	if !ok {
		h.writeJSON(w, http.StatusNotFound, map[string]string{"error": "NOT_FOUND", "message": "unknown checkout session"})
		return nil, false
	}
	return wiz, true
}

func (h *handlers) sessionState(wiz *checkoutapp.Wizard) map[string]any {
	return map[string]any{
		"step":        int(wiz.Step()),
		"stepName":    wiz.Step().String(),
		"fieldErrors": wiz.FieldErrors(),
	}
}

func (h *handlers) createSession(w http.ResponseWriter, r *http.Request) {
	var req struct {
		UserID string `json:"userId"`
	}
	if !h.readJSON(w, r, &req) {
		return
	}
	if req.UserID == "" {
		h.writeJSON(w, http.StatusBadRequest, map[string]string{"error": "INVALID_ARGUMENT", "message": "userId is required"})
		return
	}

	id := uuid.NewString()
	wiz := h.newWizard(req.UserID)

	h.mu.Lock()
	h.sessions[id] = wiz
	h.mu.Unlock()

	h.writeJSON(w, http.StatusCreated, map[string]any{
		"sessionId": id,
		"step":      int(wiz.Step()),
		"stepName":  wiz.Step().String(),
	})
}

func (h *handlers) getSession(w http.ResponseWriter, r *http.Request) {
	wiz, ok := h.session(w, r)
	if !ok {
		return
	}
	h.writeJSON(w, http.StatusOK, h.sessionState(wiz))
}

func (h *handlers) setContact(w http.ResponseWriter, r *http.Request) {
	wiz, ok := h.session(w, r)
	if !ok {
		return
	}

	var req struct {
		Name  *string `json:"name"`
		Email *string `json:"email"`
		Phone *string `json:"phone"`
	}
	if !h.readJSON(w, r, &req) {
		return
	}

	// only fields present in the body are edited, so their errors clear
	// one at a time like the form does
	if req.Name != nil {
		wiz.SetName(*req.Name)
	}
	if req.Email != nil {
		wiz.SetEmail(*req.Email)
	}
	if req.Phone != nil {
		wiz.SetPhone(*req.Phone)
	}
	h.writeJSON(w, http.StatusOK, h.sessionState(wiz))
}

func (h *handlers) setAddress(w http.ResponseWriter, r *http.Request) {
	wiz, ok := h.session(w, r)
	if !ok {
		return
	}

	var req struct {
		Street string `json:"street"`
	}
	if !h.readJSON(w, r, &req) {
		return
	}
	wiz.SetAddress(req.Street)
	h.writeJSON(w, http.StatusOK, h.sessionState(wiz))
}

func (h *handlers) sessionPaymentMethods(w http.ResponseWriter, r *http.Request) {
	wiz, ok := h.session(w, r)
	if !ok {
		return
	}
	methods, err := wiz.LoadPaymentMethods(r.Context())
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, methods)
}

func (h *handlers) selectPayment(w http.ResponseWriter, r *http.Request) {
	wiz, ok := h.session(w, r)
	if !ok {
		return
	}

	var req struct {
		MethodID string `json:"methodId"`
	}
	if !h.readJSON(w, r, &req) {
		return
	}
	if err := wiz.SelectPaymentMethod(req.MethodID); err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, h.sessionState(wiz))
}

func (h *handlers) sessionNext(w http.ResponseWriter, r *http.Request) {
	wiz, ok := h.session(w, r)
	if !ok {
		return
	}
	if err := wiz.Next(r.Context()); err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, h.sessionState(wiz))
}

func (h *handlers) sessionBack(w http.ResponseWriter, r *http.Request) {
	wiz, ok := h.session(w, r)
	if !ok {
		return
	}
	exited := !wiz.Back()
	state := h.sessionState(wiz)
	state["exited"] = exited
	h.writeJSON(w, http.StatusOK, state)
}

func (h *handlers) sessionSubmit(w http.ResponseWriter, r *http.Request) {
	wiz, ok := h.session(w, r)
	if !ok {
		return
	}

	conf, err := wiz.Submit(r.Context())
	if err != nil {
		h.writeError(w, err)
		return
	}

	h.mu.Lock()
	delete(h.sessions, r.PathValue("id"))
	h.mu.Unlock()

	h.writeJSON(w, http.StatusOK, map[string]string{"orderId": conf.OrderID})
}

// ---- orders ----

type orderDTO struct {
	ID            string       `json:"id"`
	UserID        string       `json:"userId"`
	VendorID      string       `json:"vendorId"`
	Status        string       `json:"status"`
	PaymentMethod string       `json:"paymentMethod"`
	TotalPrice    money.Amount `json:"totalPrice"`
	Delivery      struct {
		Street string `json:"street"`
		Email  string `json:"email"`
		Name   string `json:"name"`
		Phone  string `json:"phone"`
	} `json:"deliveryAddress"`
	Items     []orderItemDTO `json:"items"`
	CreatedAt time.Time      `json:"createdAt"`
}

type orderItemDTO struct {
	ProductID string       `json:"productId"`
	Title     string       `json:"title"`
	Price     money.Amount `json:"price"`
	Image     string       `json:"image"`
	Quantity  int          `json:"quantity"`
}

func toOrderDTO(o orderdom.Order) orderDTO {
	dto := orderDTO{
		ID:            o.ID,
		UserID:        o.UserID,
		VendorID:      o.VendorID,
		Status:        o.Status,
		PaymentMethod: o.PaymentMethod,
		TotalPrice:    o.TotalPrice,
		CreatedAt:     o.CreatedAt,
	}
	dto.Delivery.Street = o.DeliveryAddress.Street
	dto.Delivery.Email = o.DeliveryAddress.Email
	dto.Delivery.Name = o.DeliveryAddress.Name
	dto.Delivery.Phone = o.DeliveryAddress.Phone
	for _, it := range o.Items {
		dto.Items = append(dto.Items, orderItemDTO{
			ProductID: it.ProductID,
			Title:     it.Title,
			Price:     it.Price,
			Image:     it.Image,
			Quantity:  it.Quantity,
		})
	}
	return dto
}

func (h *handlers) listOrders(w http.ResponseWriter, r *http.Request) {
	userID := r.URL.Query().Get("userId")
	orders, err := h.orders.ListByUser(r.Context(), userID)
	if err != nil {
		h.writeError(w, err)
		return
	}
	out := make([]orderDTO, 0, len(orders))
	for _, o := range orders {
		out = append(out, toOrderDTO(o))
	}
	h.writeJSON(w, http.StatusOK, out)
}

func (h *handlers) getOrder(w http.ResponseWriter, r *http.Request) {
	o, err := h.orders.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, toOrderDTO(o))
}

func (h *handlers) getOrderQR(w http.ResponseWriter, r *http.Request) {
	o, err := h.orders.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		h.writeError(w, err)
		return
	}

	png, err := h.qr.Encode(o.ID)
	if err != nil {
		h.writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(png)
}

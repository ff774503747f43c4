package controllers

import (
	"net/http"

	"github.com/angelmondragon/storefront-backend/api/middleware"
	"github.com/angelmondragon/storefront-backend/api/responses"
	"github.com/angelmondragon/storefront-backend/api/validators"
	basketsvc "github.com/angelmondragon/storefront-backend/internal/basket"
	"github.com/angelmondragon/storefront-backend/internal/identity"
	"github.com/angelmondragon/storefront-backend/pkg/config"
	pkgerrors "github.com/angelmondragon/storefront-backend/pkg/errors"
	"github.com/angelmondragon/storefront-backend/pkg/logger"
)

// BasketGet returns the caller's basket, or 404 when none exists yet. A
// request that resolves to no buyer key expires any stale buyer cookie.
func BasketGet(svc basketsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		buyerKey := middleware.BuyerKeyFromContext(r.Context())
		if buyerKey == "" {
			identity.ClearBuyerCookie(w)
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeNotFound, "basket not found"))
			return
		}
		dto, err := svc.Get(r.Context(), buyerKey)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if dto == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeNotFound, "basket not found"))
			return
		}
		responses.WriteSuccess(w, dto)
	}
}

// BasketAddItem adds quantity of a product, minting the anonymous buyer
// cookie for first-time callers.
func BasketAddItem(svc basketsvc.Service, checkout config.CheckoutConfig, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		productID, err := validators.ParseQueryUUID(r, "productId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		quantity, err := validators.ParseQueryInt(r, "quantity", 1, 1, 1000)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		buyerKey := middleware.BuyerKeyFromContext(r.Context())
		if buyerKey == "" {
			buyerKey = identity.NewAnonymousID()
			identity.WriteBuyerCookie(w, buyerKey, checkout.BuyerCookieTTL)
		}

		dto, err := svc.AddItem(r.Context(), buyerKey, productID, quantity)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, dto)
	}
}

// BasketRemoveItem removes quantity of a product, deleting the line when it
// reaches zero.
func BasketRemoveItem(svc basketsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		productID, err := validators.ParseQueryUUID(r, "productId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		quantity, err := validators.ParseQueryInt(r, "quantity", 1, 1, 1000)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		buyerKey := middleware.BuyerKeyFromContext(r.Context())
		dto, err := svc.RemoveItem(r.Context(), buyerKey, productID, quantity)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, dto)
	}
}

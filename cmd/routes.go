package main

import (
	"net/http"

	"github.com/bmizerany/pat"
	"github.com/justinas/alice"

	"github.com/10-menachi/AirBnB-clone-v3/internal/handlers"
)

func (app *application) routes() http.Handler {
	standardMiddleware := alice.New(app.recoverPanic, app.logRequest, secureHeaders, makeResponseJSON, app.storageSession)

	mux := pat.New()
	prefixes := []string{""}
	if app.prefix != "" {
		prefixes = append(prefixes, app.prefix)
	}
	for _, p := range prefixes {
		app.mount(mux, p, standardMiddleware)
	}
	mux.NotFound = standardMiddleware.ThenFunc(handlers.NotFound)
	return mux
}

// mount registers every API route under p.
func (app *application) mount(mux *pat.PatternServeMux, p string, m alice.Chain) {
	// Index
	mux.Get(p+"/status", m.ThenFunc(app.indexHandler.Status))
	mux.Get(p+"/stats", m.ThenFunc(app.indexHandler.Stats))

	// States
	mux.Get(p+"/states", m.ThenFunc(app.stateHandler.GetStates))
	mux.Post(p+"/states", m.ThenFunc(app.stateHandler.CreateState))
	mux.Get(p+"/states/:id", m.ThenFunc(app.stateHandler.GetStateByID))
	mux.Put(p+"/states/:id", m.ThenFunc(app.stateHandler.UpdateState))
	mux.Del(p+"/states/:id", m.ThenFunc(app.stateHandler.DeleteState))

	// Cities
	mux.Get(p+"/states/:state_id/cities", m.ThenFunc(app.cityHandler.GetCitiesByState))
	mux.Post(p+"/states/:state_id/cities", m.ThenFunc(app.cityHandler.CreateCity))
	mux.Get(p+"/cities", m.ThenFunc(app.cityHandler.GetCities))
	mux.Post(p+"/cities", m.ThenFunc(app.cityHandler.CreateCity))
	mux.Get(p+"/cities/:id", m.ThenFunc(app.cityHandler.GetCityByID))
	mux.Put(p+"/cities/:id", m.ThenFunc(app.cityHandler.UpdateCity))
	mux.Del(p+"/cities/:id", m.ThenFunc(app.cityHandler.DeleteCity))

	// Amenities
	mux.Get(p+"/amenities", m.ThenFunc(app.amenityHandler.GetAmenities))
	mux.Post(p+"/amenities", m.ThenFunc(app.amenityHandler.CreateAmenity))
	mux.Get(p+"/amenities/:id", m.ThenFunc(app.amenityHandler.GetAmenityByID))
	mux.Put(p+"/amenities/:id", m.ThenFunc(app.amenityHandler.UpdateAmenity))
	mux.Del(p+"/amenities/:id", m.ThenFunc(app.amenityHandler.DeleteAmenity))

	// Users
	mux.Get(p+"/users", m.ThenFunc(app.userHandler.GetUsers))
	mux.Post(p+"/users", m.ThenFunc(app.userHandler.CreateUser))
	mux.Get(p+"/users/:id", m.ThenFunc(app.userHandler.GetUserByID))
	mux.Put(p+"/users/:id", m.ThenFunc(app.userHandler.UpdateUser))
	mux.Del(p+"/users/:id", m.ThenFunc(app.userHandler.DeleteUser))

	// Places
	mux.Get(p+"/cities/:city_id/places", m.ThenFunc(app.placeHandler.GetPlacesByCity))
	mux.Post(p+"/cities/:city_id/places", m.ThenFunc(app.placeHandler.CreatePlace))
	mux.Post(p+"/places_search", m.ThenFunc(app.placeHandler.SearchPlaces))
	mux.Get(p+"/places", m.ThenFunc(app.placeHandler.GetPlaces))
	mux.Post(p+"/places", m.ThenFunc(app.placeHandler.CreatePlace))
	mux.Get(p+"/places/:id", m.ThenFunc(app.placeHandler.GetPlaceByID))
	mux.Put(p+"/places/:id", m.ThenFunc(app.placeHandler.UpdatePlace))
	mux.Del(p+"/places/:id", m.ThenFunc(app.placeHandler.DeletePlace))

	// Place amenities
	mux.Get(p+"/places/:id/amenities", m.ThenFunc(app.placeHandler.GetPlaceAmenities))
	mux.Post(p+"/places/:id/amenities/:amenity_id", m.ThenFunc(app.placeHandler.LinkAmenity))
	mux.Del(p+"/places/:id/amenities/:amenity_id", m.ThenFunc(app.placeHandler.UnlinkAmenity))

	// Reviews
	mux.Get(p+"/places/:place_id/reviews", m.ThenFunc(app.reviewHandler.GetReviewsByPlace))
	mux.Post(p+"/places/:place_id/reviews", m.ThenFunc(app.reviewHandler.CreateReview))
	mux.Get(p+"/reviews", m.ThenFunc(app.reviewHandler.GetReviews))
	mux.Post(p+"/reviews", m.ThenFunc(app.reviewHandler.CreateReview))
	mux.Get(p+"/reviews/:id", m.ThenFunc(app.reviewHandler.GetReviewByID))
	mux.Put(p+"/reviews/:id", m.ThenFunc(app.reviewHandler.UpdateReview))
	mux.Del(p+"/reviews/:id", m.ThenFunc(app.reviewHandler.DeleteReview))
}

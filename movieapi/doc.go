// Package movieapi provides a session-aware client for the movie catalog server.
//
// The client holds the session document (base URL and credentials) loaded
// from a session.Store, attaches the stored token to every protected call and
// writes the document back whenever the token changes.
//
// # Usage
//
//	store := session.NewFileStore("config.json")
//	client := movieapi.NewClient(
//		store,
//		session.LoadOrDefault(store, logger),
//		logger,
//		movieapi.WithTimeout(30*time.Second),
//	)
//
//	if err := client.Login(ctx, "alice", "secret"); err != nil {
//		log.Fatal(err)
//	}
//
//	movies, err := client.ListMovies(ctx)
//
// # Sentinels
//
// NoMovieID (-1) stands for "no movie selected". CreateMovie, UpdateMovie,
// DeleteMovie and ListMovie treat it as a successful no-op, and UpdateMovie
// does the same for a zero-value Movie.
//
// # Error Handling
//
// Errors can be classified with errors.Is:
//
//   - ErrNoBaseURL: the session has no base URL; nothing was sent
//   - ErrValidation: required input is missing; nothing was sent
//   - ErrUnauthorized: the server answered 401 on a protected call; the
//     stored token has been cleared and persisted
//   - ErrRemote: any other non-2xx status or a transport failure
//   - ErrDecode: the response body could not be parsed
//   - session.ErrPersist: the session document could not be written
//
// Non-2xx responses are returned as *APIError:
//
//	var apiErr *movieapi.APIError
//	if errors.As(err, &apiErr) && apiErr.IsNotFound() {
//		// Handle missing movie
//	}
package movieapi

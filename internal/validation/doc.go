// ArtSwipe - Swipe-based Artwork Personalization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/artswipe

/*
Package validation provides struct validation using go-playground/validator v10.

A thread-safe singleton validator caches struct metadata. Errors name fields
by their json or query tag so API clients see the names they sent.

# Request Types

  - SwipeRequest: POST /api/v1/swipes body
  - RecommendationsQuery: recommendations path and query parameters
  - UserPath: user ID from the URL path

# Custom Tags

  - identifier: no control characters and no leading or trailing whitespace

# Usage

	req := validation.SwipeRequest{...}
	if verr := validation.ValidateStruct(&req); verr != nil {
	    // 400 VALIDATION_ERROR with verr.Error() as message and verr.Details() as details
	    return
	}
*/
package validation

// Package manifest loads generator manifests.
//
// A manifest is an HCL file under the generators directory that declares
// the parameters a generator accepts:
//
//	generator "footprints/keyswitch" {
//	  handler     = "KeyswitchFootprint"
//	  description = "Keyswitch footprints with an optional stabiliser"
//
//	  param "prefix" {
//	    type = string
//	  }
//	  param "rotation" {
//	    type    = number
//	    default = 0
//	  }
//	  param "stabiliser_type" {
//	    type     = string
//	    optional = true
//	  }
//	}
//
// The manifest is the static schema source for a generator. The registry
// checks it against the Go handler's parameter struct at startup, and the
// schema package turns it into the shapes definition documents are
// validated against.
package manifest

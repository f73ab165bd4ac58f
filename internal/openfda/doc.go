// Package openfda runs catalog tools against the openFDA drug label endpoint.
//
// Every catalog spec names the label fields to search and the label sections
// to return. A call searches the search fields for the drug_name argument and
// returns the requested sections of the matching labels:
//
//	{"drug_name": "warfarin", "drug_interactions": ["..."]}
//
// A search without matches is ErrNoLabel. Like every executor error it is
// handed to the model and never cached.
package openfda

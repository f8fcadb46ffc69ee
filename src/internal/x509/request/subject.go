// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package x509request

import (
	"crypto/x509/pkix"
	"fmt"
)

// Subject holds the distinguished name attributes of a single entity.
// All fields are free-form and empty by default.
type Subject struct {
	CommonName         string `json:"commonName" yaml:"commonName"`
	Organization       string `json:"organization" yaml:"organization"`
	OrganizationalUnit string `json:"organizationalUnit" yaml:"organizationalUnit"`
	Country            string `json:"country" yaml:"country"`
}

// CommonNameOnly returns a Subject with only the common name set.
// Root and intermediate CAs are named this way.
func CommonNameOnly(cn string) Subject { return Subject{CommonName: cn} }

// String implements [fmt.Stringer].
func (s Subject) String() string {
	return fmt.Sprintf("common_name: %s, organization: %s, organization_unit: %s, country: %s",
		s.CommonName, s.Organization, s.OrganizationalUnit, s.Country)
}

// Name converts the subject into a [pkix.Name], skipping empty attributes.
func (s Subject) Name() pkix.Name {
	name := pkix.Name{CommonName: s.CommonName}
	if s.Organization != "" {
		name.Organization = []string{s.Organization}
	}
	if s.OrganizationalUnit != "" {
		name.OrganizationalUnit = []string{s.OrganizationalUnit}
	}
	if s.Country != "" {
		name.Country = []string{s.Country}
	}
	return name
}

package api

import (
	"strings"

	"github.com/SebastienDorgan/talgo"
)

//Flavor identifies a compute API implementation
type Flavor string

const (
	//FlavorOpenStack reference OpenStack compute API
	FlavorOpenStack Flavor = "openstack"
	//FlavorRackspace Rackspace public cloud
	FlavorRackspace Flavor = "rackspace"
	//FlavorHPCloud HP Helion public cloud
	FlavorHPCloud Flavor = "hpcloud"
	//FlavorAWS Amazon EC2
	FlavorAWS Flavor = "aws"
	//FlavorUnknown any other provider
	FlavorUnknown Flavor = "unknown"
)

//ParseFlavor returns the flavor named s, FlavorUnknown if s is not a known flavor
func ParseFlavor(s string) Flavor {
	f := Flavor(strings.ToLower(strings.TrimSpace(s)))
	switch f {
	case FlavorOpenStack, FlavorRackspace, FlavorHPCloud, FlavorAWS:
		return f
	case "":
		return FlavorOpenStack
	}
	return FlavorUnknown
}

//Release OpenStack release, releases are ordered
type Release int

//OpenStack releases
const (
	ReleaseUnknown Release = iota
	ReleaseAustin
	ReleaseBexar
	ReleaseCactus
	ReleaseDiablo
	ReleaseEssex
	ReleaseFolsom
	ReleaseGrizzly
	ReleaseHavana
	ReleaseIcehouse
	ReleaseJuno
	ReleaseKilo
	ReleaseLiberty
	ReleaseMitaka
	ReleaseNewton
	ReleaseOcata
	ReleasePike
	ReleaseQueens
	ReleaseRocky
	ReleaseStein
	ReleaseTrain
)

var releaseNames = []string{
	"unknown", "austin", "bexar", "cactus", "diablo", "essex", "folsom", "grizzly", "havana",
	"icehouse", "juno", "kilo", "liberty", "mitaka", "newton", "ocata", "pike", "queens",
	"rocky", "stein", "train",
}

//KeyPairMilestone first release of the reference API serving key pairs
const KeyPairMilestone = ReleaseEssex

//ParseRelease returns the release named s.
//An empty name means the latest known release.
func ParseRelease(s string) Release {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return ReleaseTrain
	}
	n := talgo.FindFirst(len(releaseNames), func(i int) bool {
		return releaseNames[i] == s
	})
	if n < 0 || n >= len(releaseNames) {
		return ReleaseUnknown
	}
	return Release(n)
}

func (r Release) String() string {
	if r < 0 || int(r) >= len(releaseNames) {
		return releaseNames[0]
	}
	return releaseNames[r]
}

//After tells if r is m or a later release
func (r Release) After(m Release) bool {
	return r != ReleaseUnknown && r >= m
}

//Capabilities key pair features offered by a provider
type Capabilities struct {
	Flavor  Flavor
	Release Release
	//KeyPairs the key pair resource exists
	KeyPairs bool
	//Import public key import is accepted
	Import bool
	//IDFields wire fields holding the key pair identifier, by order of preference
	IDFields []string
	//Milestone release from which the reference API serves key pairs
	Milestone Release
}

type capabilityRule struct {
	keyPairs func(r Release) bool
	imports  func(r Release) bool
	idFields []string
}

func always(Release) bool { return true }
func never(Release) bool  { return false }
func sinceMilestone(r Release) bool {
	return r.After(KeyPairMilestone)
}

var capabilityTable = map[Flavor]capabilityRule{
	FlavorOpenStack: {keyPairs: sinceMilestone, imports: sinceMilestone, idFields: []string{"name"}},
	FlavorRackspace: {keyPairs: always, imports: always, idFields: []string{"name"}},
	FlavorHPCloud:   {keyPairs: always, imports: always, idFields: []string{"id", "name"}},
	FlavorAWS:       {keyPairs: always, imports: always, idFields: []string{"KeyName"}},
	FlavorUnknown:   {keyPairs: never, imports: never},
}

//ResolveCapabilities computes the key pair capabilities of a provider flavor at a given release
func ResolveCapabilities(flavor Flavor, release Release) Capabilities {
	rule, ok := capabilityTable[flavor]
	if !ok {
		flavor = FlavorUnknown
		rule = capabilityTable[FlavorUnknown]
	}
	fields := make([]string, len(rule.idFields))
	copy(fields, rule.idFields)
	return Capabilities{
		Flavor:    flavor,
		Release:   release,
		KeyPairs:  rule.keyPairs(release),
		Import:    rule.keyPairs(release) && rule.imports(release),
		IDFields:  fields,
		Milestone: KeyPairMilestone,
	}
}

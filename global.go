package asnval

import "time"

const (
	isaSegmentId  = "ISA"
	ieaSegmentId  = "IEA"
	gsSegmentId   = "GS"
	geSegmentId   = "GE"
	stSegmentId   = "ST"
	seSegmentId   = "SE"
	bsnSegmentId  = "BSN"
	hlSegmentId   = "HL"
	dtmSegmentId  = "DTM"
	linSegmentId  = "LIN"
	sn1SegmentId  = "SN1"
	certSegmentId = "CERT"

	// asnTransactionSetCode is the X12 transaction set code for an
	// Advance Shipment Notice (ST01).
	asnTransactionSetCode = "856"

	primaryElementSeparator  = "*"
	fallbackElementSeparator = "|"
	segmentTerminator        = "~"

	// fallbackTagWidth is used when a line contains neither element
	// separator: the first N characters become the segment tag.
	fallbackTagWidth = 3

	// maxInputBytes is the only resource guard on parsing. Inputs above
	// this size degrade to an error-flagged document.
	maxInputBytes = 10 << 20

	isaElementCount      = 16
	minAdvisoryLineCount = 10
)

// Control numbers live at fixed element offsets, counted after the
// segment tag (ISA13, GS06, ST02 in X12 terms).
const (
	isaIndexControlNumber = 12
	gsIndexControlNumber  = 5
	stIndexControlNumber  = 1
)

const (
	stIndexTransactionSetCode = 0
	stIndexTxnControlNumber   = 1
)

// DTM qualifiers relevant to an ASN.
const (
	dtmQualifierShip     = "011"
	dtmQualifierDelivery = "017"
	dtmQualifierCreation = "137"
)

// ASN timing windows, in hours relative to submission time.
const (
	minAdvanceHours     = 0
	maxAdvanceHours     = 24
	optimalAdvanceHours = 12

	minDeliveryWindowHours = 1
	maxDeliveryWindowHours = 72
	maxCreationAgeHours    = 48

	businessHourStart = 8
	businessHourEnd   = 18
)

// Certificate freshness thresholds.
const (
	minCertificateKeyBits  = 2048
	certExpiryWarningDays  = 30
	certExpiryCriticalDays = 7
)

const vendorIdPrefix = "WMTIN-"

// requiredSegmentIds are the segments an ASN interchange must carry.
// Presence is checked by raw-text search, so even input the tokenizer
// could not fully structure is covered.
var requiredSegmentIds = []string{
	isaSegmentId,
	gsSegmentId,
	stSegmentId,
	bsnSegmentId,
	hlSegmentId,
	seSegmentId,
	geSegmentId,
	ieaSegmentId,
}

// controlNumberIndexes maps segment tags to the element offset of their
// control number. Segments with fewer elements are skipped silently;
// length checking belongs to the structure validator, not the parser.
var controlNumberIndexes = map[string]int{
	isaSegmentId: isaIndexControlNumber,
	gsSegmentId:  gsIndexControlNumber,
	stSegmentId:  stIndexControlNumber,
}

// indianStateCodes maps the two-digit GSTIN state code to the state or
// union territory name. Codes 01-38.
var indianStateCodes = map[string]string{
	"01": "Jammu and Kashmir",
	"02": "Himachal Pradesh",
	"03": "Punjab",
	"04": "Chandigarh",
	"05": "Uttarakhand",
	"06": "Haryana",
	"07": "Delhi",
	"08": "Rajasthan",
	"09": "Uttar Pradesh",
	"10": "Bihar",
	"11": "Sikkim",
	"12": "Arunachal Pradesh",
	"13": "Nagaland",
	"14": "Manipur",
	"15": "Mizoram",
	"16": "Tripura",
	"17": "Meghalaya",
	"18": "Assam",
	"19": "West Bengal",
	"20": "Jharkhand",
	"21": "Odisha",
	"22": "Chhattisgarh",
	"23": "Madhya Pradesh",
	"24": "Gujarat",
	"25": "Daman and Diu",
	"26": "Dadra and Nagar Haveli",
	"27": "Maharashtra",
	"28": "Andhra Pradesh",
	"29": "Karnataka",
	"30": "Goa",
	"31": "Lakshadweep",
	"32": "Kerala",
	"33": "Tamil Nadu",
	"34": "Puducherry",
	"35": "Andaman and Nicobar Islands",
	"36": "Telangana",
	"37": "Andhra Pradesh",
	"38": "Ladakh",
}

// Product describes a catalog entry for a registered GTIN.
type Product struct {
	Name     string `json:"name"`
	Category string `json:"category"`
}

// productCatalog is a stand-in for the retailer master catalog lookup.
// Every entry carries a valid GTIN-14 check digit.
var productCatalog = map[string]Product{
	"00012345678905": {Name: "Sample Product 1", Category: "Electronics"},
	"10012345678902": {Name: "Sample Product 2", Category: "Clothing"},
	"11111111111113": {Name: "Test Product", Category: "Food"},
	"20012345678909": {Name: "Demo Item", Category: "Home"},
}

// validUnitsOfMeasure are the UOM codes accepted in SN1 segments
// without an advisory.
var validUnitsOfMeasure = map[string]bool{
	"EA": true,
	"CS": true,
	"BX": true,
	"PK": true,
	"LB": true,
	"KG": true,
	"PC": true,
	"DZ": true,
}

// trustedRootIssuers are substrings matched (case-insensitively)
// against certificate issuer names.
var trustedRootIssuers = []string{
	"walmart root ca",
	"verisign",
	"digicert",
}

var weakSignatureAlgorithms = []string{"md5", "sha1"}

const keyUsageDigitalSignature = "digital_signature"

// Certificate holds the transport-certificate metadata this system
// checks. These are heuristics over declared metadata, not X.509
// parsing.
type Certificate struct {
	Name               string    `json:"name"`
	Expiry             time.Time `json:"expiry"`
	KeyBits            int       `json:"key_bits,omitempty"`
	Issuer             string    `json:"issuer,omitempty"`
	KeyUsage           []string  `json:"key_usage,omitempty"`
	SignatureAlgorithm string    `json:"signature_algorithm,omitempty"`
	Source             string    `json:"source"`
}

const (
	certSourceEDI    = "edi_content"
	certSourceSample = "sample"
)

// sampleCertificates fabricates the demonstration certificate set used
// when a document carries no CERT segments and sample data is allowed.
// Expiries are relative to now so each freshness band stays populated.
func sampleCertificates(now time.Time) []Certificate {
	return []Certificate{
		{
			Name:               "vendor_signing_cert",
			Expiry:             now.AddDate(0, 0, 5),
			KeyBits:            2048,
			Issuer:             "DigiCert Global Root CA",
			KeyUsage:           []string{keyUsageDigitalSignature, "key_encipherment"},
			SignatureAlgorithm: "SHA256withRSA",
			Source:             certSourceSample,
		},
		{
			Name:               "vendor_encryption_cert",
			Expiry:             now.AddDate(0, 0, 90),
			KeyBits:            2048,
			Issuer:             "VeriSign Class 3 Public Primary CA",
			KeyUsage:           []string{"key_encipherment", "data_encipherment"},
			SignatureAlgorithm: "SHA256withRSA",
			Source:             certSourceSample,
		},
		{
			Name:               "walmart_public_cert",
			Expiry:             now.AddDate(0, 0, 365),
			KeyBits:            4096,
			Issuer:             "Walmart Root CA",
			KeyUsage:           []string{keyUsageDigitalSignature, "key_encipherment"},
			SignatureAlgorithm: "SHA256withRSA",
			Source:             certSourceSample,
		},
	}
}

// AS2Profile is the transport-configuration block checked alongside
// certificates.
type AS2Profile struct {
	Compression bool `json:"compression"`
	Encryption  bool `json:"encryption"`
	Signing     bool `json:"signing"`
	MDNRequired bool `json:"mdn_required"`
	MDNSigned   bool `json:"mdn_signed"`
}

// defaultAS2Profile is the fixed transport profile this deployment
// expects.
var defaultAS2Profile = AS2Profile{
	Compression: false,
	Encryption:  true,
	Signing:     true,
	MDNRequired: true,
	MDNSigned:   true,
}

package domain

import "encoding/xml"

// Domain contains the Petstore schema objects shared by the client, the twin and the watch pipeline.

// PetStatus is the pet's availability in the store.
type PetStatus string

const (
	PetStatusAvailable PetStatus = "available"
	PetStatusPending   PetStatus = "pending"
	PetStatusSold      PetStatus = "sold"
)

type Category struct {
	ID   int64  `json:"id,omitempty" xml:"id,omitempty"`
	Name string `json:"name,omitempty" xml:"name,omitempty"`
}

type Tag struct {
	ID   int64  `json:"id,omitempty" xml:"id,omitempty"`
	Name string `json:"name,omitempty" xml:"name,omitempty"`
}

type Pet struct {
	ID        int64     `json:"id,omitempty" xml:"id,omitempty"`
	Category  *Category `json:"category,omitempty" xml:"category,omitempty"`
	Name      string    `json:"name" xml:"name"`
	PhotoURLs []string  `json:"photoUrls" xml:"photoUrls>photoUrl"`
	Tags      []Tag     `json:"tags,omitempty" xml:"tags>tag"`
	Status    PetStatus `json:"status,omitempty" xml:"status,omitempty"`
}

// ApiResponse is the generic acknowledgement returned by mutating endpoints.
type ApiResponse struct {
	Code    int32  `json:"code,omitempty" xml:"code,omitempty"`
	Type    string `json:"type,omitempty" xml:"type,omitempty"`
	Message string `json:"message,omitempty" xml:"message,omitempty"`
}

// Pets is a pet list. In XML it is encoded as <pets><Pet>...</Pet></pets>.
type Pets []Pet

// MarshalXML implements xml.Marshaler.
func (p Pets) MarshalXML(e *xml.Encoder, start xml.StartElement) error {
	start.Name = xml.Name{Local: "pets"}
	if err := e.EncodeToken(start); err != nil {
		return err
	}
	for _, pet := range p {
		if err := e.EncodeElement(pet, xml.StartElement{Name: xml.Name{Local: "Pet"}}); err != nil {
			return err
		}
	}
	if err := e.EncodeToken(start.End()); err != nil {
		return err
	}
	return e.Flush()
}

// UnmarshalXML implements xml.Unmarshaler. Every child element is decoded as a Pet.
func (p *Pets) UnmarshalXML(d *xml.Decoder, start xml.StartElement) error {
	out := Pets{}
	for {
		tok, err := d.Token()
		if err != nil {
			return err
		}
		switch el := tok.(type) {
		case xml.StartElement:
			var pet Pet
			if err := d.DecodeElement(&pet, &el); err != nil {
				return err
			}
			out = append(out, pet)
		case xml.EndElement:
			*p = out
			return nil
		}
	}
}

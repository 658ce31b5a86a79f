package email

// Templates mirror the three Jinja2 templates the original selects between
// (spec §4.5 "Email remover"); rewritten here as Go text/template strings.
// The rendered first line is always "Subject: ...", the remainder is the body.

const ccpaDeletionTemplate = `Subject: CCPA Data Deletion Request - {{.Reference}}

To Whom It May Concern at {{.Broker.Name}},

Pursuant to my rights under the California Consumer Privacy Act (CCPA), I am
requesting that you delete all personal information you have collected about
me, including but not limited to:

Name: {{.Person.Name}}
Email: {{.Person.Email}}
{{if .Person.Phone}}Phone: {{.Person.Phone}}
{{end}}{{if .Person.Address}}Address: {{.Person.Address}}
{{end}}
Please confirm in writing once this deletion has been completed, referencing
request ID {{.Reference}}. I understand you have 45 days to respond.

Date: {{.Date}}
Reference: {{.Reference}}
`

const gdprErasureTemplate = `Subject: GDPR Erasure Request (Article 17) - {{.Reference}}

To Whom It May Concern at {{.Broker.Name}},

Pursuant to Article 17 of the General Data Protection Regulation (GDPR -
"right to erasure"), I am requesting that you erase all personal data you
hold about me:

Name: {{.Person.Name}}
Email: {{.Person.Email}}
{{if .Person.Phone}}Phone: {{.Person.Phone}}
{{end}}{{if .Person.Address}}Address: {{.Person.Address}}
{{end}}
Please confirm completion of this erasure in writing, referencing request ID
{{.Reference}}, within one month as required by the regulation.

Date: {{.Date}}
Reference: {{.Reference}}
`

const genericRemovalTemplate = `Subject: Data Removal Request - {{.Reference}}

To Whom It May Concern at {{.Broker.Name}},

I am requesting that you remove all personal information you have collected
about me from {{.Broker.Name}} and any associated public listings:

Name: {{.Person.Name}}
Email: {{.Person.Email}}
{{if .Person.Phone}}Phone: {{.Person.Phone}}
{{end}}{{if .Person.Address}}Address: {{.Person.Address}}
{{end}}
Please confirm once this request has been processed, referencing request ID
{{.Reference}}.

Date: {{.Date}}
Reference: {{.Reference}}
`

package persona

import (
	"context"
	"fmt"
	"math/rand/v2"
	"net/http"
	"strings"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	apperrors "github.com/louisbranch/zhpersona/internal/platform/errors"
	"github.com/louisbranch/zhpersona/internal/platform/otel"
	"github.com/louisbranch/zhpersona/internal/random"
	"github.com/louisbranch/zhpersona/internal/services/persona/address"
	"github.com/louisbranch/zhpersona/internal/services/persona/dataset"
	"github.com/louisbranch/zhpersona/internal/services/persona/demographic"
	"github.com/louisbranch/zhpersona/internal/services/persona/geo"
	"github.com/louisbranch/zhpersona/internal/services/persona/idnumber"
	"github.com/louisbranch/zhpersona/internal/services/persona/metrics"
	"github.com/louisbranch/zhpersona/internal/services/persona/phone"
	"github.com/louisbranch/zhpersona/internal/services/persona/primitives"
)

// Config wires an Assembler.
type Config struct {
	// Datasets supplies the tables. Nil uses the embedded bundle.
	Datasets *dataset.Bundle
	// Rules overrides the demographic tables. Nil uses the defaults.
	Rules *demographic.Rules
	// Metrics is optional.
	Metrics *metrics.Metrics
	// AI holds default collaborator settings merged under each call's own.
	AI         AIConfig
	HTTPClient *http.Client
	// Storyteller builds the AI collaborator for a call. Nil uses the
	// HTTP client in package story.
	Storyteller func(AIConfig) Storyteller
	// Now is the clock used for ages. Nil uses time.Now.
	Now func() time.Time
}

// Assembler builds personas. It is safe for concurrent use: every call gets
// its own random stream and the shared tables are read-only.
type Assembler struct {
	datasets    *dataset.Bundle
	rules       demographic.Rules
	metrics     *metrics.Metrics
	ai          AIConfig
	httpClient  *http.Client
	storyteller func(AIConfig) Storyteller
	now         func() time.Time
}

// New creates an assembler.
func New(cfg Config) *Assembler {
	a := &Assembler{
		datasets:    cfg.Datasets,
		rules:       demographic.DefaultRules(),
		metrics:     cfg.Metrics,
		ai:          cfg.AI,
		httpClient:  cfg.HTTPClient,
		storyteller: cfg.Storyteller,
		now:         cfg.Now,
	}
	if a.datasets == nil {
		a.datasets = dataset.Default()
	}
	if cfg.Rules != nil {
		a.rules = *cfg.Rules
	}
	if a.storyteller == nil {
		a.storyteller = a.httpStoryteller
	}
	if a.now == nil {
		a.now = time.Now
	}
	return a
}

// Persona generates one record.
func (a *Assembler) Persona(ctx context.Context, opts Options) (Result, error) {
	start := time.Now()
	ctx, span := otel.Tracer().Start(ctx, "persona.generate")
	defer span.End()

	res, err := a.persona(ctx, opts)
	a.metrics.ObserveGenerate(err, time.Since(start))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return Result{}, err
	}
	span.SetAttributes(
		attribute.Int64("persona.seed", res.Seed),
		attribute.Bool("persona.second_phone", res.Record.SecondaryPhone != nil),
		attribute.Bool("persona.ai", opts.UseAI),
	)
	return res, nil
}

// draw carries the per-call state shared by the pipeline stages.
type draw struct {
	rng      *rand.Rand
	stream   *rand.ChaCha8
	index    *geo.Index
	composer *address.Composer
	opts     Options
	over     Overrides
}

func (a *Assembler) persona(ctx context.Context, opts Options) (Result, error) {
	if err := opts.Validate(); err != nil {
		return Result{}, err
	}
	gender, _ := ParseGender(string(opts.Gender))
	ages := opts.AgeBounds()

	index, err := a.datasets.Geography()
	if err != nil {
		return Result{}, apperrors.Wrap(apperrors.CodeDatasetUnavailable, "geography dataset unavailable", err)
	}
	seed, err := random.ResolveSeed(opts.Seed)
	if err != nil {
		return Result{}, err
	}
	rng, stream := random.NewSeededRNG(seed)
	d := &draw{
		rng:      rng,
		stream:   stream,
		index:    index,
		composer: address.NewComposer(a.datasets.Villages()),
		opts:     opts,
		over:     opts.Overrides,
	}

	_, span := otel.Tracer().Start(ctx, "persona.resolve")
	rec, err := a.resolve(d, gender, ages)
	span.End()
	if err != nil {
		return Result{}, err
	}

	if opts.UseAI {
		a.enrich(ctx, &rec, opts.AI.withDefaults(a.ai))
	}
	return Result{Record: rec, Fields: opts.Fields, Seed: seed}, nil
}

func (a *Assembler) resolve(d *draw, gender Gender, ages AgeRange) (Record, error) {
	rng, over := d.rng, d.over

	home := d.index.SelectChain(rng, d.opts.HometownProvince, d.opts.HometownCity)
	homeAddr := d.composer.Compose(rng, home)

	male := gender == GenderMale
	if gender == GenderAny {
		male = rng.IntN(2) == 0
	}

	now := a.now()
	birth := demographic.BirthDateForAge(rng, now, ages.Min, ages.Max)
	age := demographic.Age(birth, now)

	bucket := demographic.BucketFor(age)
	job := orElse(over.Job, func() string {
		return bucket.Job(rng, func() string { return primitives.Occupation(rng) })
	})
	education, enforced := a.rules.Enforce(rng, job, bucket.DrawEducation(rng), age, ages.Max)
	if enforced != age {
		birth = demographic.BirthDateForAge(rng, now, enforced, enforced)
		age = enforced
		bucket = demographic.BucketFor(age)
	}
	employment := orElse(over.Employment, func() string { return bucket.DrawEmployment(rng, job) })
	education = orElse(over.Education, func() string { return education })

	id, err := idnumber.Compute(rng, home.AreaCode(), birth, male)
	if err != nil {
		return Record{}, apperrors.Wrap(apperrors.CodeDatasetUnavailable,
			fmt.Sprintf("district %s has no usable area code", home.District.Name), err)
	}

	work, workAddr := a.workplace(d, home, homeAddr, job)
	salary := FormatSalary(0)
	if !demographic.PaysNothing(job, employment) {
		salary = orElse(over.Salary, func() string {
			return FormatSalary(a.rules.Salary(rng, job, employment, workAddr.Province, workAddr.City, !workAddr.IsUrban))
		})
	}

	phones := a.datasets.Phones()
	primary := Phone{
		Number:   phones.Generate(rng, work.Province.Name, work.City.Name),
		Location: phone.Location(work.Province.Name, work.City.Name),
	}
	postcode := a.datasets.Postcodes().Resolve(rng, home.Province.Name, home.City.Name, home.District.Name)

	name := orElse(over.Name, func() string { return primitives.Name(rng, male) })
	ethnicity := orElse(over.Ethnicity, func() string { return a.rules.Ethnicity(rng, home.Province.Name) })
	physique := demographic.DrawPhysique(rng, age, male)
	bloodType := orElse(over.BloodType, func() string { return demographic.BloodType(rng) })

	accounts := primitives.NewAccounts(rng, d.stream)
	username := orElse(over.Username, func() string { return accounts.Username(name) })
	password := orElse(over.Password, accounts.Password)
	email := orElse(over.Email, func() string { return accounts.Email(username) })
	tempEmail, tempInbox := accounts.TempMail(username)
	if over.TempEmail != "" {
		tempEmail = over.TempEmail
	}

	guid := orElse(over.GUID, func() string { return primitives.GUID(d.stream) })
	osName, userAgent := over.OS, over.UserAgent
	switch {
	case osName == "" && userAgent != "":
		osName = orElse(primitives.OSFromUserAgent(userAgent), func() string { return primitives.OperatingSystem(rng) })
	case osName == "":
		osName = primitives.OperatingSystem(rng)
	}
	userAgent = orElse(userAgent, func() string { return primitives.UserAgent(rng, osName) })
	webHome := orElse(over.WebHome, accounts.WebHome)

	bankName, bankCard := primitives.BankCard(rng, age)
	bankName = orElse(over.BankName, func() string { return bankName })
	bankCard = orElse(over.BankCard, func() string { return bankCard })
	mbti := orElse(over.MBTI, func() string { return primitives.MBTI(rng) })
	question, answer := primitives.SecurityQuestion(rng, phone.Location(home.Province.Name, home.City.Name))
	question = orElse(over.SecurityQuestion, func() string { return question })
	answer = orElse(over.SecurityAnswer, func() string { return answer })

	rec := Record{
		Name:           name,
		Gender:         genderLabel(male),
		Age:            age,
		BirthDate:      birth.Format(demographic.DateLayout),
		IdentityNumber: id,
		Email:          email,
		TempEmail:      tempEmail,
		TempEmailURL:   tempInbox,
		Username:       username,
		Password:       password,
		Ethnicity:      ethnicity,
		BankCard:       bankCard,
		BankName:       bankName,
		MBTI:           mbti,
		Physical: Physical{
			Height:    orElse(over.Height, physique.Height),
			Weight:    orElse(over.Weight, physique.Weight),
			BloodType: bloodType,
		},
		Hometown: Hometown{
			Province: homeAddr.Province,
			City:     homeAddr.City,
			District: homeAddr.District,
			Address:  homeAddr.FullAddress,
			Postcode: postcode,
		},
		Workplace:    placeOf(workAddr),
		PrimaryPhone: primary,
		Social: Social{
			Education:        education,
			Employment:       employment,
			Job:              job,
			Salary:           salary,
			SecurityQuestion: question,
			SecurityAnswer:   answer,
		},
		Internet: Internet{
			GUID:      guid,
			UserAgent: userAgent,
			OS:        osName,
			WebHome:   webHome,
		},
	}

	if d.opts.SecondPhone {
		second, location := a.secondary(d, home)
		rec.SecondaryPhone = &second
		rec.WorkLocation = &location
	}
	return rec, nil
}

// workplace picks where the persona works. A work province or city named
// by the caller pins the primary workplace unless a second phone is
// requested, in which case the pin applies to the second job and the
// primary workplace stays at home. Otherwise senior jobs held by rural
// residents move to a first-tier province.
func (a *Assembler) workplace(d *draw, home geo.Chain, homeAddr address.Address, job string) (geo.Chain, address.Address) {
	highEnd := a.rules.IsHighEnd(job)
	work := home
	switch {
	case d.opts.WorkPinned() && !d.opts.SecondPhone:
		work = d.index.SelectChain(d.rng, d.opts.WorkProvince, d.opts.WorkCity)
	case d.opts.WorkPinned():
	case highEnd && !homeAddr.IsUrban:
		pool := d.index.ProvincesMatching(a.rules.HighEndProvinces...)
		if len(pool) == 0 {
			pool = d.index.Provinces()
		}
		work = geo.SelectChainFrom(d.rng, pool, "", "")
	}
	if highEnd {
		work = address.PreferUrbanTown(d.rng, work)
		return work, d.composer.ComposeUrban(d.rng, work)
	}
	return work, d.composer.Compose(d.rng, work)
}

// secondary draws the second phone and its work location, in the pinned
// province or else in any province other than the hometown's.
func (a *Assembler) secondary(d *draw, home geo.Chain) (Phone, Place) {
	var chain geo.Chain
	if d.opts.WorkPinned() {
		chain = d.index.SelectChain(d.rng, d.opts.WorkProvince, d.opts.WorkCity)
	} else {
		provinces := d.index.Provinces()
		others := provinces[:0:0]
		for _, p := range provinces {
			if p.Name != home.Province.Name {
				others = append(others, p)
			}
		}
		if len(others) == 0 {
			others = provinces
		}
		chain = geo.SelectChainFrom(d.rng, others, "", "")
	}
	addr := d.composer.Compose(d.rng, chain)
	number := a.datasets.Phones().Generate(d.rng, chain.Province.Name, chain.City.Name)
	return Phone{Number: number, Location: SecondaryLocation(chain.Province.Name, chain.City.Name)}, placeOf(addr)
}

// SecondaryLocation labels a second phone with "{province}{city}", leaving
// out city levels that are administrative placeholders.
func SecondaryLocation(province, city string) string {
	switch {
	case phone.IsMunicipality(phone.ProvinceKey(province)) && (city == "市辖区" || city == "县"):
		return province
	case city == "省直辖县级行政区划" || city == "自治区直辖县级行政区划":
		return province
	}
	return province + city
}

// FormatSalary renders a monthly salary in yuan.
func FormatSalary(yuan int) string {
	return fmt.Sprintf("￥%d", yuan)
}

func placeOf(addr address.Address) Place {
	return Place{
		Province: addr.Province,
		City:     addr.City,
		District: addr.District,
		Address:  addr.FullAddress,
	}
}

func genderLabel(male bool) string {
	if male {
		return "男"
	}
	return "女"
}

func orElse(v string, gen func() string) string {
	if strings.TrimSpace(v) != "" {
		return v
	}
	return gen()
}
